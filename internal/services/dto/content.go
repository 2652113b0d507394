package dto

import "irrigation_backend/internal/models"

// Order - указатель, чтобы отличить отсутствующее поле от 0

type PartnerRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Logo  string `json:"logo" validate:"required,mediaref,max=1024"`
	Order *int   `json:"order" validate:"required,min=0"`
}

func (r *PartnerRequest) Apply(p *models.Partner) {
	p.Name = r.Name
	p.Logo = r.Logo
	p.Order = *r.Order
}

type FeatureRequest struct {
	Icon        string `json:"icon" validate:"required,notblank,max=100"`
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	Order       *int   `json:"order" validate:"required,min=0"`
}

func (r *FeatureRequest) Apply(f *models.Feature) {
	f.Icon = r.Icon
	f.Title = r.Title
	f.Description = r.Description
	f.Order = *r.Order
}

type StatRequest struct {
	Number string `json:"number" validate:"required,notblank,max=50"`
	Label  string `json:"label" validate:"required,notblank,max=255"`
	Icon   string `json:"icon" validate:"required,notblank,max=100"`
	Order  *int   `json:"order" validate:"required,min=0"`
}

func (r *StatRequest) Apply(s *models.Stat) {
	s.Number = r.Number
	s.Label = r.Label
	s.Icon = r.Icon
	s.Order = *r.Order
}
