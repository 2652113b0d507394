package services

import (
	"errors"

	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/validator"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// notFoundEntities - сентинел репозитория -> имя сущности в ответе
var notFoundEntities = map[error]string{
	repositories.ErrCategoryNotFound: "category",
	repositories.ErrProductNotFound:  "product",
	repositories.ErrGalleryNotFound:  "gallery item",
	repositories.ErrDownloadNotFound: "download item",
	repositories.ErrContactNotFound:  "contact submission",
	repositories.ErrPartnerNotFound:  "partner",
	repositories.ErrFeatureNotFound:  "feature",
	repositories.ErrStatNotFound:     "stat",
}

// handleRepoError: not found -> 404 без деталей, остальное -> 500
func handleRepoError(err error, id string) error {
	for sentinel, entity := range notFoundEntities {
		if errors.Is(err, sentinel) {
			return apperrors.NotFound(entity, id)
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("record", id)
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}

// fieldError - ошибка валидации одного поля, которую нельзя выразить тегом
func fieldError(field, reason, message string) error {
	return apperrors.ValidationError(validator.Single(field, reason, message).Errors)
}

// withTx выполняет fn в транзакции. Если db уже транзакция, gorm создаст savepoint.
func withTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}
