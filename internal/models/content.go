package models

// Сущности главной страницы. Order - порядок вывода, при равенстве - порядок вставки.

type Partner struct {
	BaseModel
	Name  string `gorm:"size:255;not null" json:"name"`
	Logo  string `gorm:"size:1024;not null" json:"logo"`
	Order int    `gorm:"column:display_order;not null;default:0;index" json:"order"`
}

type Feature struct {
	BaseModel
	Icon        string `gorm:"size:100;not null" json:"icon"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Order       int    `gorm:"column:display_order;not null;default:0;index" json:"order"`
}

type Stat struct {
	BaseModel
	Number string `gorm:"size:50;not null" json:"number"` // "500+", "15"
	Label  string `gorm:"size:255;not null" json:"label"`
	Icon   string `gorm:"size:100;not null" json:"icon"`
	Order  int    `gorm:"column:display_order;not null;default:0;index" json:"order"`
}
