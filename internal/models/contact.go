package models

import "gorm.io/gorm"

type ContactSubmission struct {
	BaseModel
	Name    string        `gorm:"size:255;not null" json:"name"`
	Email   string        `gorm:"size:255;not null" json:"email"`
	Subject string        `gorm:"size:255;not null" json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Company string        `gorm:"size:255" json:"company,omitempty"`
	Phone   string        `gorm:"size:50" json:"phone,omitempty"`
	Status  ContactStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
}

// BeforeCreate - новая заявка всегда PENDING, если статус не задан
func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = ContactStatusPending
	}
	return nil
}
