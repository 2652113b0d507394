package repositories

import (
	"errors"

	"irrigation_backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	CreateContact(db *gorm.DB, contact *models.ContactSubmission) error
	FindContactByID(db *gorm.DB, id string) (*models.ContactSubmission, error)
	FindContacts(db *gorm.DB, status models.ContactStatus) ([]models.ContactSubmission, error)
	UpdateContact(db *gorm.DB, contact *models.ContactSubmission) error
	UpdateContactStatus(db *gorm.DB, id string, status models.ContactStatus) error
	DeleteContact(db *gorm.DB, id string) error
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) CreateContact(db *gorm.DB, contact *models.ContactSubmission) error {
	return db.Create(contact).Error
}

func (r *ContactRepositoryImpl) FindContactByID(db *gorm.DB, id string) (*models.ContactSubmission, error) {
	var contact models.ContactSubmission
	if err := db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindContacts - новые сверху
func (r *ContactRepositoryImpl) FindContacts(db *gorm.DB, status models.ContactStatus) ([]models.ContactSubmission, error) {
	var contacts []models.ContactSubmission
	q := db.Model(&models.ContactSubmission{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC, id ASC").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepositoryImpl) UpdateContact(db *gorm.DB, contact *models.ContactSubmission) error {
	return db.Save(contact).Error
}

func (r *ContactRepositoryImpl) UpdateContactStatus(db *gorm.DB, id string, status models.ContactStatus) error {
	// RowsAffected не проверяем: MySQL возвращает 0, если статус не изменился
	return db.Model(&models.ContactSubmission{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ContactRepositoryImpl) DeleteContact(db *gorm.DB, id string) error {
	result := db.Delete(&models.ContactSubmission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
