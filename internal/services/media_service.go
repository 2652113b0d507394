package services

import (
	"context"

	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Категория галереи и загрузок - свободный текстовый тег, существование не проверяется

// =======================
// Галерея
// =======================

type GalleryService interface {
	ListGallery(ctx context.Context, db *gorm.DB, filter *dto.TagFilter) ([]models.GalleryItem, error)
	GetGalleryItem(ctx context.Context, db *gorm.DB, id string) (*models.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, db *gorm.DB, req *dto.GalleryItemRequest) (*models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, db *gorm.DB, id string, req *dto.GalleryItemRequest) (*models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, db *gorm.DB, id string) error
}

type galleryService struct {
	galleryRepo repositories.GalleryRepository
}

func NewGalleryService(galleryRepo repositories.GalleryRepository) GalleryService {
	return &galleryService{galleryRepo: galleryRepo}
}

func (s *galleryService) ListGallery(ctx context.Context, db *gorm.DB, filter *dto.TagFilter) ([]models.GalleryItem, error) {
	items, err := s.galleryRepo.FindGalleryItems(db, filter.Category)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func (s *galleryService) GetGalleryItem(ctx context.Context, db *gorm.DB, id string) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.FindGalleryItemByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return item, nil
}

func (s *galleryService) CreateGalleryItem(ctx context.Context, db *gorm.DB, req *dto.GalleryItemRequest) (*models.GalleryItem, error) {
	item := &models.GalleryItem{}
	req.Apply(item)
	if err := s.galleryRepo.CreateGalleryItem(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *galleryService) UpdateGalleryItem(ctx context.Context, db *gorm.DB, id string, req *dto.GalleryItemRequest) (*models.GalleryItem, error) {
	var item *models.GalleryItem
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if item, err = s.galleryRepo.FindGalleryItemByID(tx, id); err != nil {
			return err
		}
		req.Apply(item)
		return s.galleryRepo.UpdateGalleryItem(tx, item)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return item, nil
}

func (s *galleryService) DeleteGalleryItem(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.galleryRepo.DeleteGalleryItem(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}

// =======================
// Файлы для скачивания
// =======================

type DownloadService interface {
	ListDownloads(ctx context.Context, db *gorm.DB, filter *dto.TagFilter) ([]models.DownloadItem, error)
	GetDownload(ctx context.Context, db *gorm.DB, id string) (*models.DownloadItem, error)
	CreateDownload(ctx context.Context, db *gorm.DB, req *dto.DownloadItemRequest) (*models.DownloadItem, error)
	UpdateDownload(ctx context.Context, db *gorm.DB, id string, req *dto.DownloadItemRequest) (*models.DownloadItem, error)
	DeleteDownload(ctx context.Context, db *gorm.DB, id string) error
}

type downloadService struct {
	downloadRepo repositories.DownloadRepository
}

func NewDownloadService(downloadRepo repositories.DownloadRepository) DownloadService {
	return &downloadService{downloadRepo: downloadRepo}
}

func (s *downloadService) ListDownloads(ctx context.Context, db *gorm.DB, filter *dto.TagFilter) ([]models.DownloadItem, error) {
	items, err := s.downloadRepo.FindDownloadItems(db, filter.Category)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func (s *downloadService) GetDownload(ctx context.Context, db *gorm.DB, id string) (*models.DownloadItem, error) {
	item, err := s.downloadRepo.FindDownloadItemByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return item, nil
}

func (s *downloadService) CreateDownload(ctx context.Context, db *gorm.DB, req *dto.DownloadItemRequest) (*models.DownloadItem, error) {
	item := &models.DownloadItem{}
	req.Apply(item)
	if err := s.downloadRepo.CreateDownloadItem(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *downloadService) UpdateDownload(ctx context.Context, db *gorm.DB, id string, req *dto.DownloadItemRequest) (*models.DownloadItem, error) {
	var item *models.DownloadItem
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if item, err = s.downloadRepo.FindDownloadItemByID(tx, id); err != nil {
			return err
		}
		req.Apply(item)
		return s.downloadRepo.UpdateDownloadItem(tx, item)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return item, nil
}

func (s *downloadService) DeleteDownload(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.downloadRepo.DeleteDownloadItem(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}
