package repositories

import (
	"errors"

	"irrigation_backend/internal/models"

	"gorm.io/gorm"
)

// =======================
// Галерея
// =======================

type GalleryRepository interface {
	CreateGalleryItem(db *gorm.DB, item *models.GalleryItem) error
	FindGalleryItemByID(db *gorm.DB, id string) (*models.GalleryItem, error)
	FindGalleryItems(db *gorm.DB, category string) ([]models.GalleryItem, error)
	UpdateGalleryItem(db *gorm.DB, item *models.GalleryItem) error
	DeleteGalleryItem(db *gorm.DB, id string) error
	GalleryImages(db *gorm.DB) ([]string, error)
}

type GalleryRepositoryImpl struct{}

func NewGalleryRepository() GalleryRepository {
	return &GalleryRepositoryImpl{}
}

func (r *GalleryRepositoryImpl) CreateGalleryItem(db *gorm.DB, item *models.GalleryItem) error {
	return db.Create(item).Error
}

func (r *GalleryRepositoryImpl) FindGalleryItemByID(db *gorm.DB, id string) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GalleryRepositoryImpl) FindGalleryItems(db *gorm.DB, category string) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	q := db.Model(&models.GalleryItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC, id ASC").Find(&items).Error
	return items, err
}

func (r *GalleryRepositoryImpl) UpdateGalleryItem(db *gorm.DB, item *models.GalleryItem) error {
	return db.Save(item).Error
}

func (r *GalleryRepositoryImpl) DeleteGalleryItem(db *gorm.DB, id string) error {
	result := db.Delete(&models.GalleryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGalleryNotFound
	}
	return nil
}

func (r *GalleryRepositoryImpl) GalleryImages(db *gorm.DB) ([]string, error) {
	var paths []string
	err := db.Model(&models.GalleryItem{}).Pluck("image_url", &paths).Error
	return paths, err
}

// =======================
// Файлы для скачивания
// =======================

type DownloadRepository interface {
	CreateDownloadItem(db *gorm.DB, item *models.DownloadItem) error
	FindDownloadItemByID(db *gorm.DB, id string) (*models.DownloadItem, error)
	FindDownloadItems(db *gorm.DB, category string) ([]models.DownloadItem, error)
	UpdateDownloadItem(db *gorm.DB, item *models.DownloadItem) error
	DeleteDownloadItem(db *gorm.DB, id string) error
	DownloadFiles(db *gorm.DB) ([]string, error)
}

type DownloadRepositoryImpl struct{}

func NewDownloadRepository() DownloadRepository {
	return &DownloadRepositoryImpl{}
}

func (r *DownloadRepositoryImpl) CreateDownloadItem(db *gorm.DB, item *models.DownloadItem) error {
	return db.Create(item).Error
}

func (r *DownloadRepositoryImpl) FindDownloadItemByID(db *gorm.DB, id string) (*models.DownloadItem, error) {
	var item models.DownloadItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDownloadNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *DownloadRepositoryImpl) FindDownloadItems(db *gorm.DB, category string) ([]models.DownloadItem, error) {
	var items []models.DownloadItem
	q := db.Model(&models.DownloadItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC, id ASC").Find(&items).Error
	return items, err
}

func (r *DownloadRepositoryImpl) UpdateDownloadItem(db *gorm.DB, item *models.DownloadItem) error {
	return db.Save(item).Error
}

func (r *DownloadRepositoryImpl) DeleteDownloadItem(db *gorm.DB, id string) error {
	result := db.Delete(&models.DownloadItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDownloadNotFound
	}
	return nil
}

func (r *DownloadRepositoryImpl) DownloadFiles(db *gorm.DB) ([]string, error) {
	var paths []string
	err := db.Model(&models.DownloadItem{}).Pluck("file_url", &paths).Error
	return paths, err
}
