package services

import (
	"context"

	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ContentService - партнеры, преимущества и цифры главной страницы
type ContentService interface {
	ListPartners(ctx context.Context, db *gorm.DB) ([]models.Partner, error)
	GetPartner(ctx context.Context, db *gorm.DB, id string) (*models.Partner, error)
	CreatePartner(ctx context.Context, db *gorm.DB, req *dto.PartnerRequest) (*models.Partner, error)
	UpdatePartner(ctx context.Context, db *gorm.DB, id string, req *dto.PartnerRequest) (*models.Partner, error)
	DeletePartner(ctx context.Context, db *gorm.DB, id string) error

	ListFeatures(ctx context.Context, db *gorm.DB) ([]models.Feature, error)
	GetFeature(ctx context.Context, db *gorm.DB, id string) (*models.Feature, error)
	CreateFeature(ctx context.Context, db *gorm.DB, req *dto.FeatureRequest) (*models.Feature, error)
	UpdateFeature(ctx context.Context, db *gorm.DB, id string, req *dto.FeatureRequest) (*models.Feature, error)
	DeleteFeature(ctx context.Context, db *gorm.DB, id string) error

	ListStats(ctx context.Context, db *gorm.DB) ([]models.Stat, error)
	GetStat(ctx context.Context, db *gorm.DB, id string) (*models.Stat, error)
	CreateStat(ctx context.Context, db *gorm.DB, req *dto.StatRequest) (*models.Stat, error)
	UpdateStat(ctx context.Context, db *gorm.DB, id string, req *dto.StatRequest) (*models.Stat, error)
	DeleteStat(ctx context.Context, db *gorm.DB, id string) error
}

type contentService struct {
	contentRepo repositories.ContentRepository
}

func NewContentService(contentRepo repositories.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

// ============================================
// Partners
// ============================================

func (s *contentService) ListPartners(ctx context.Context, db *gorm.DB) ([]models.Partner, error) {
	partners, err := s.contentRepo.FindPartners(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return partners, nil
}

func (s *contentService) GetPartner(ctx context.Context, db *gorm.DB, id string) (*models.Partner, error) {
	partner, err := s.contentRepo.FindPartnerByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return partner, nil
}

func (s *contentService) CreatePartner(ctx context.Context, db *gorm.DB, req *dto.PartnerRequest) (*models.Partner, error) {
	partner := &models.Partner{}
	req.Apply(partner)
	if err := s.contentRepo.CreatePartner(db, partner); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return partner, nil
}

func (s *contentService) UpdatePartner(ctx context.Context, db *gorm.DB, id string, req *dto.PartnerRequest) (*models.Partner, error) {
	var partner *models.Partner
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if partner, err = s.contentRepo.FindPartnerByID(tx, id); err != nil {
			return err
		}
		req.Apply(partner)
		return s.contentRepo.UpdatePartner(tx, partner)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return partner, nil
}

func (s *contentService) DeletePartner(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.contentRepo.DeletePartner(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}

// ============================================
// Features
// ============================================

func (s *contentService) ListFeatures(ctx context.Context, db *gorm.DB) ([]models.Feature, error) {
	features, err := s.contentRepo.FindFeatures(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return features, nil
}

func (s *contentService) GetFeature(ctx context.Context, db *gorm.DB, id string) (*models.Feature, error) {
	feature, err := s.contentRepo.FindFeatureByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return feature, nil
}

func (s *contentService) CreateFeature(ctx context.Context, db *gorm.DB, req *dto.FeatureRequest) (*models.Feature, error) {
	feature := &models.Feature{}
	req.Apply(feature)
	if err := s.contentRepo.CreateFeature(db, feature); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return feature, nil
}

func (s *contentService) UpdateFeature(ctx context.Context, db *gorm.DB, id string, req *dto.FeatureRequest) (*models.Feature, error) {
	var feature *models.Feature
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if feature, err = s.contentRepo.FindFeatureByID(tx, id); err != nil {
			return err
		}
		req.Apply(feature)
		return s.contentRepo.UpdateFeature(tx, feature)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return feature, nil
}

func (s *contentService) DeleteFeature(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.contentRepo.DeleteFeature(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}

// ============================================
// Stats
// ============================================

func (s *contentService) ListStats(ctx context.Context, db *gorm.DB) ([]models.Stat, error) {
	stats, err := s.contentRepo.FindStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *contentService) GetStat(ctx context.Context, db *gorm.DB, id string) (*models.Stat, error) {
	stat, err := s.contentRepo.FindStatByID(db, id)
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return stat, nil
}

func (s *contentService) CreateStat(ctx context.Context, db *gorm.DB, req *dto.StatRequest) (*models.Stat, error) {
	stat := &models.Stat{}
	req.Apply(stat)
	if err := s.contentRepo.CreateStat(db, stat); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stat, nil
}

func (s *contentService) UpdateStat(ctx context.Context, db *gorm.DB, id string, req *dto.StatRequest) (*models.Stat, error) {
	var stat *models.Stat
	err := withTx(db, func(tx *gorm.DB) error {
		var err error
		if stat, err = s.contentRepo.FindStatByID(tx, id); err != nil {
			return err
		}
		req.Apply(stat)
		return s.contentRepo.UpdateStat(tx, stat)
	})
	if err != nil {
		return nil, handleRepoError(err, id)
	}
	return stat, nil
}

func (s *contentService) DeleteStat(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.contentRepo.DeleteStat(db, id); err != nil {
		return handleRepoError(err, id)
	}
	return nil
}
