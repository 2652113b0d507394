package dto

import "irrigation_backend/internal/models"

type ContactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,notblank,max=255"`
	Message string `json:"message" validate:"required,notblank,max=10000"`
	Company string `json:"company" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=50"`
}

// Apply не трогает статус: при создании он PENDING, меняется отдельным PATCH
func (r *ContactRequest) Apply(c *models.ContactSubmission) {
	c.Name = r.Name
	c.Email = r.Email
	c.Subject = r.Subject
	c.Message = r.Message
	c.Company = r.Company
	c.Phone = r.Phone
}

type ContactStatusRequest struct {
	Status models.ContactStatus `json:"status" validate:"required,contactstatus"`
}

type ContactFilter struct {
	Status models.ContactStatus `form:"status" json:"status" validate:"omitempty,contactstatus"`
}
