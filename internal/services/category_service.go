package services

import (
	"context"
	"errors"
	"fmt"

	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryService interface {
	ListCategories(ctx context.Context, db *gorm.DB) ([]models.Category, error)
	GetCategory(ctx context.Context, db *gorm.DB, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, db *gorm.DB, id string, req *dto.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, id string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(ctx context.Context, db *gorm.DB) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindCategories(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CategoryRequest) (*models.Category, error) {
	category := &models.Category{}
	req.Apply(category)

	err := withTx(db, func(tx *gorm.DB) error {
		if err := s.ensureNameFree(tx, category.Name, ""); err != nil {
			return err
		}
		return s.categoryRepo.CreateCategory(tx, category)
	})
	if err != nil {
		return nil, mapCategoryWriteError(err, "")
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, db *gorm.DB, id string, req *dto.CategoryRequest) (*models.Category, error) {
	var category *models.Category
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		category, err = s.categoryRepo.FindCategoryByID(tx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNameFree(tx, req.Name, id); err != nil {
			return err
		}
		req.Apply(category)
		return s.categoryRepo.UpdateCategory(tx, category)
	})
	if err != nil {
		return nil, mapCategoryWriteError(err, id)
	}
	return category, nil
}

// DeleteCategory - категорию с товарами удалить нельзя (RESTRICT), 409
func (s *categoryService) DeleteCategory(ctx context.Context, db *gorm.DB, id string) error {
	err := withTx(db, func(tx *gorm.DB) error {
		if _, err := s.categoryRepo.FindCategoryByID(tx, id); err != nil {
			return err
		}
		count, err := s.categoryRepo.CountProducts(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrConflict(nil, "category",
				fmt.Sprintf("Category still has %d product(s); move or delete them first", count))
		}
		return s.categoryRepo.DeleteCategory(tx, id)
	})
	if err != nil {
		return handleRepoError(err, id)
	}
	return nil
}

func (s *categoryService) ensureNameFree(tx *gorm.DB, name, selfID string) error {
	existing, err := s.categoryRepo.FindCategoryByName(tx, name)
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperrors.ErrAlreadyExists("category", fmt.Sprintf("Category %q already exists", name))
	}
	return nil
}

func mapCategoryWriteError(err error, id string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyExists("category", "Category with this name already exists")
	}
	return handleRepoError(err, id)
}
