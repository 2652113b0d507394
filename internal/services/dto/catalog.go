package dto

import "irrigation_backend/internal/models"

// ============================================
// REQUEST STRUCTURES
// ============================================

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

func (r *CategoryRequest) Apply(c *models.Category) {
	c.Name = r.Name
	c.Description = r.Description
}

// ProductRequest - создание и полное обновление товара.
// Категория задается только существующим id.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"required,notblank"`
	Features    []string `json:"features" validate:"omitempty,dive,max=500"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,max=100"`
	Image       string   `json:"image" validate:"required,mediaref,max=1024"`
	Featured    bool     `json:"featured"`
	CategoryID  string   `json:"categoryId" validate:"required,max=36"`
}

func (r *ProductRequest) Apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Features = nonNil(r.Features)
	p.Sizes = nonNil(r.Sizes)
	p.Image = r.Image
	p.Featured = r.Featured
	p.CategoryID = r.CategoryID
	p.Category = nil
}

// ProductFilter - ?category= принимает id или имя категории
type ProductFilter struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
}

// TagFilter - фильтр галереи и загрузок по текстовому тегу
type TagFilter struct {
	Category string `form:"category"`
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
