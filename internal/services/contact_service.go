package services

import (
	"context"

	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	ListContacts(ctx context.Context, db *gorm.DB, filter *dto.ContactFilter) ([]models.ContactSubmission, error)
	GetContact(ctx context.Context, db *gorm.DB, id string) (*models.ContactSubmission, error)
	CreateContact(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactSubmission, error)
	UpdateContact(ctx context.Context, db *gorm.DB, id string, req *dto.ContactRequest) (*models.ContactSubmission, error)
	UpdateContactStatus(ctx context.Context, db *gorm.DB, id string, status models.ContactStatus) (*models.ContactSubmission, error)
	DeleteContact(ctx context.Context, db *gorm.DB, id string) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
	notifier    ContactNotifier
}

func NewContactService(contactRepo repositories.ContactRepository, notifier ContactNotifier) ContactService {
	if notifier == nil {
		notifier = NoopContactNotifier{}
	}
	return &contactService{
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

func (s *contactService) ListContacts(ctx context.Context, db *gorm.DB, filter *dto.ContactFilter) ([]models.ContactSubmission, error) {
	contacts, err := s.contactRepo.FindContacts(db, filter.Status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return contacts, nil
}

func (s *contactService) GetContact(ctx context.Context, db *gorm.DB, id string) (*models.ContactSubmission, error) {
	contact, err := s.contactRepo.FindContactByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return contact, nil
}

// CreateContact сохраняет заявку со статусом PENDING и уведомляет менеджера.
// Ошибка уведомления на ответ не влияет.
func (s *contactService) CreateContact(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactSubmission, error) {
	contact := &models.ContactSubmission{Status: models.ContactStatusPending}
	req.Apply(contact)

	if err := s.contactRepo.CreateContact(db, contact); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Contact submission received", "contact_id", contact.ID)
	s.notifier.NotifyContact(ctx, contact)

	return contact, nil
}

func (s *contactService) UpdateContact(ctx context.Context, db *gorm.DB, id string, req *dto.ContactRequest) (*models.ContactSubmission, error) {
	var contact *models.ContactSubmission
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if contact, err = s.contactRepo.FindContactByID(tx, id); err != nil {
			return err
		}
		req.Apply(contact)
		return s.contactRepo.UpdateContact(tx, contact)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return contact, nil
}

// UpdateContactStatus - любой переход разрешен, проверяется только значение
func (s *contactService) UpdateContactStatus(ctx context.Context, db *gorm.DB, id string, status models.ContactStatus) (*models.ContactSubmission, error) {
	if !status.Valid() {
		return nil, fieldError("status", "contactstatus", "Must be one of: PENDING, IN_PROGRESS, RESPONDED, CLOSED")
	}

	var contact *models.ContactSubmission
	err := withTx(db, func(tx *gorm.DB) error {
		if _, err := s.contactRepo.FindContactByID(tx, id); err != nil {
			return err
		}
		if err := s.contactRepo.UpdateContactStatus(tx, id, status); err != nil {
			return err
		}
		var err error
		contact, err = s.contactRepo.FindContactByID(tx, id)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}

	logger.CtxInfo(ctx, "Contact status changed", "contact_id", id, "status", status)
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.contactRepo.DeleteContact(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}
