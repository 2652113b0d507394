package models

// GalleryItem.Category и DownloadItem.Category - свободные текстовые теги,
// не внешний ключ на categories.

type GalleryItem struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	ImageURL    string `gorm:"column:image_url;size:1024;not null" json:"imageUrl"`
	Category    string `gorm:"size:100;not null;index" json:"category"`
}

type DownloadItem struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	FileURL     string `gorm:"column:file_url;size:1024;not null" json:"fileUrl"`
	FileSize    string `gorm:"size:50;not null" json:"fileSize"` // "2.4 MB"
	FileType    string `gorm:"size:50;not null" json:"fileType"` // "PDF"
	Category    string `gorm:"size:100;not null;index" json:"category"`
}
