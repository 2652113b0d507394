package models

import "gorm.io/datatypes"

type Product struct {
	BaseModel
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Image       string                      `gorm:"size:1024;not null" json:"image"`
	Featured    bool                        `gorm:"not null;default:false;index" json:"featured"`

	CategoryID string    `gorm:"type:varchar(36);not null;index" json:"categoryId"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
}
