package repositories

import (
	"errors"

	"irrigation_backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	CreateCategory(db *gorm.DB, category *models.Category) error
	FindCategoryByID(db *gorm.DB, id string) (*models.Category, error)
	FindCategoryByName(db *gorm.DB, name string) (*models.Category, error)
	FindCategories(db *gorm.DB) ([]models.Category, error)
	UpdateCategory(db *gorm.DB, category *models.Category) error
	DeleteCategory(db *gorm.DB, id string) error
	CountProducts(db *gorm.DB, categoryID string) (int64, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) CreateCategory(db *gorm.DB, category *models.Category) error {
	return db.Create(category).Error
}

func (r *CategoryRepositoryImpl) FindCategoryByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindCategoryByName(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) UpdateCategory(db *gorm.DB, category *models.Category) error {
	return db.Save(category).Error
}

func (r *CategoryRepositoryImpl) DeleteCategory(db *gorm.DB, id string) error {
	result := db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) CountProducts(db *gorm.DB, categoryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
