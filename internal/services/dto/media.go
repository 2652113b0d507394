package dto

import "irrigation_backend/internal/models"

type GalleryItemRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	ImageURL    string `json:"imageUrl" validate:"required,mediaref,max=1024"`
	Category    string `json:"category" validate:"required,notblank,max=100"`
}

func (r *GalleryItemRequest) Apply(g *models.GalleryItem) {
	g.Title = r.Title
	g.Description = r.Description
	g.ImageURL = r.ImageURL
	g.Category = r.Category
}

type DownloadItemRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	FileURL     string `json:"fileUrl" validate:"required,mediaref,max=1024"`
	FileSize    string `json:"fileSize" validate:"required,notblank,max=50"`
	FileType    string `json:"fileType" validate:"required,notblank,max=50"`
	Category    string `json:"category" validate:"required,notblank,max=100"`
}

func (r *DownloadItemRequest) Apply(d *models.DownloadItem) {
	d.Title = r.Title
	d.Description = r.Description
	d.FileURL = r.FileURL
	d.FileSize = r.FileSize
	d.FileType = r.FileType
	d.Category = r.Category
}
