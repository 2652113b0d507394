package repositories

import (
	"errors"

	"irrigation_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductQuery - условия выборки товаров. CategoryID уже разрешен из id или имени.
type ProductQuery struct {
	CategoryID string
	Featured   *bool
}

type ProductRepository interface {
	CreateProduct(db *gorm.DB, product *models.Product) error
	FindProductByID(db *gorm.DB, id string) (*models.Product, error)
	FindProducts(db *gorm.DB, query ProductQuery) ([]models.Product, error)
	UpdateProduct(db *gorm.DB, product *models.Product) error
	DeleteProduct(db *gorm.DB, id string) error
	ProductImages(db *gorm.DB) ([]string, error)
}

type ProductRepositoryImpl struct{}

func NewProductRepository() ProductRepository {
	return &ProductRepositoryImpl{}
}

// Ассоциации не пишем: категория только ссылается по category_id
func (r *ProductRepositoryImpl) CreateProduct(db *gorm.DB, product *models.Product) error {
	return db.Omit(clause.Associations).Create(product).Error
}

func (r *ProductRepositoryImpl) FindProductByID(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindProducts(db *gorm.DB, query ProductQuery) ([]models.Product, error) {
	var products []models.Product

	q := db.Preload("Category")
	if query.CategoryID != "" {
		q = q.Where("category_id = ?", query.CategoryID)
	}
	if query.Featured != nil {
		q = q.Where("featured = ?", *query.Featured)
	}

	err := q.Order("created_at ASC, id ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) UpdateProduct(db *gorm.DB, product *models.Product) error {
	return db.Omit(clause.Associations).Save(product).Error
}

func (r *ProductRepositoryImpl) DeleteProduct(db *gorm.DB, id string) error {
	result := db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ProductImages - все сохраненные пути картинок, для поиска осиротевших файлов
func (r *ProductRepositoryImpl) ProductImages(db *gorm.DB) ([]string, error) {
	var paths []string
	err := db.Model(&models.Product{}).Pluck("image", &paths).Error
	return paths, err
}
