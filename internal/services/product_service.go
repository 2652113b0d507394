package services

import (
	"context"
	"errors"

	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProductService interface {
	ListProducts(ctx context.Context, db *gorm.DB, filter *dto.ProductFilter) ([]models.Product, error)
	ListCategoryProducts(ctx context.Context, db *gorm.DB, categoryID string) ([]models.Product, error)
	GetProduct(ctx context.Context, db *gorm.DB, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, db *gorm.DB, req *dto.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, db *gorm.DB, id string, req *dto.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, db *gorm.DB, id string) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts - ?category= сначала ищется как id, затем как имя.
// Неизвестная категория дает пустой список, а не ошибку.
func (s *productService) ListProducts(ctx context.Context, db *gorm.DB, filter *dto.ProductFilter) ([]models.Product, error) {
	query := repositories.ProductQuery{Featured: filter.Featured}

	if filter.Category != "" {
		category, err := s.resolveCategory(db, filter.Category)
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return []models.Product{}, nil
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		query.CategoryID = category.ID
	}

	products, err := s.productRepo.FindProducts(db, query)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *productService) ListCategoryProducts(ctx context.Context, db *gorm.DB, categoryID string) ([]models.Product, error) {
	if _, err := s.categoryRepo.FindCategoryByID(db, categoryID); err != nil {
		return nil, handleRepoError(err, categoryID)
	}
	products, err := s.productRepo.FindProducts(db, repositories.ProductQuery{CategoryID: categoryID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, db *gorm.DB, id string) (*models.Product, error) {
	product, err := s.productRepo.FindProductByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, db *gorm.DB, req *dto.ProductRequest) (*models.Product, error) {
	product := &models.Product{}
	req.Apply(product)

	err := withTx(db, func(tx *gorm.DB) error {
		if err := s.requireCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return s.productRepo.CreateProduct(tx, product)
	})
	if err != nil {
		return nil, handleRepoError(err, "")
	}

	return s.GetProduct(ctx, db, product.ID)
}

func (s *productService) UpdateProduct(ctx context.Context, db *gorm.DB, id string, req *dto.ProductRequest) (*models.Product, error) {
	err := withTx(db, func(tx *gorm.DB) error {
		product, err := s.productRepo.FindProductByID(tx, id)
		if err != nil {
			return err
		}
		if err := s.requireCategory(tx, req.CategoryID); err != nil {
			return err
		}
		req.Apply(product)
		return s.productRepo.UpdateProduct(tx, product)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}

	return s.GetProduct(ctx, db, id)
}

func (s *productService) DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.productRepo.DeleteProduct(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}

// requireCategory - товар ссылается только на существующую категорию, автосоздания нет
func (s *productService) requireCategory(tx *gorm.DB, categoryID string) error {
	_, err := s.categoryRepo.FindCategoryByID(tx, categoryID)
	if errors.Is(err, repositories.ErrCategoryNotFound) {
		return fieldError("categoryId", "exists", "Category does not exist")
	}
	return err
}

func (s *productService) resolveCategory(db *gorm.DB, idOrName string) (*models.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(db, idOrName)
	if !errors.Is(err, repositories.ErrCategoryNotFound) {
		return category, err
	}
	return s.categoryRepo.FindCategoryByName(db, idOrName)
}
