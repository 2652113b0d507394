package repositories

import (
	"irrigation_backend/internal/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	CreateAdmin(db *gorm.DB, admin *models.AdminUser) error
	FindAdminByEmail(db *gorm.DB, email string) (*models.AdminUser, error)
	FindAdminByID(db *gorm.DB, id string) (*models.AdminUser, error)
}

type AdminRepositoryImpl struct{}

func NewAdminRepository() AdminRepository {
	return &AdminRepositoryImpl{}
}

func (r *AdminRepositoryImpl) CreateAdmin(db *gorm.DB, admin *models.AdminUser) error {
	return db.Create(admin).Error
}

func (r *AdminRepositoryImpl) FindAdminByEmail(db *gorm.DB, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindAdminByID(db *gorm.DB, id string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := findByID(db, &admin, id, ErrAdminNotFound); err != nil {
		return nil, err
	}
	return &admin, nil
}
