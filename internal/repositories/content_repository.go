package repositories

import (
	"errors"

	"irrigation_backend/internal/models"

	"gorm.io/gorm"
)

// ContentRepository - блоки главной страницы: партнеры, преимущества, цифры.
// Все три сортируются по display_order, затем по порядку вставки.
type ContentRepository interface {
	CreatePartner(db *gorm.DB, partner *models.Partner) error
	FindPartnerByID(db *gorm.DB, id string) (*models.Partner, error)
	FindPartners(db *gorm.DB) ([]models.Partner, error)
	UpdatePartner(db *gorm.DB, partner *models.Partner) error
	DeletePartner(db *gorm.DB, id string) error
	PartnerLogos(db *gorm.DB) ([]string, error)

	CreateFeature(db *gorm.DB, feature *models.Feature) error
	FindFeatureByID(db *gorm.DB, id string) (*models.Feature, error)
	FindFeatures(db *gorm.DB) ([]models.Feature, error)
	UpdateFeature(db *gorm.DB, feature *models.Feature) error
	DeleteFeature(db *gorm.DB, id string) error

	CreateStat(db *gorm.DB, stat *models.Stat) error
	FindStatByID(db *gorm.DB, id string) (*models.Stat, error)
	FindStats(db *gorm.DB) ([]models.Stat, error)
	UpdateStat(db *gorm.DB, stat *models.Stat) error
	DeleteStat(db *gorm.DB, id string) error
}

type ContentRepositoryImpl struct{}

func NewContentRepository() ContentRepository {
	return &ContentRepositoryImpl{}
}

// deleteByID удаляет запись и возвращает notFound, если ее не было
func deleteByID(db *gorm.DB, model interface{}, id string, notFound error) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func findByID(db *gorm.DB, dest interface{}, id string, notFound error) error {
	if err := db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

// --- Partners ---

func (r *ContentRepositoryImpl) CreatePartner(db *gorm.DB, partner *models.Partner) error {
	return db.Create(partner).Error
}

func (r *ContentRepositoryImpl) FindPartnerByID(db *gorm.DB, id string) (*models.Partner, error) {
	var partner models.Partner
	if err := findByID(db, &partner, id, ErrPartnerNotFound); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *ContentRepositoryImpl) FindPartners(db *gorm.DB) ([]models.Partner, error) {
	var partners []models.Partner
	err := db.Order(orderedByDisplay).Find(&partners).Error
	return partners, err
}

func (r *ContentRepositoryImpl) UpdatePartner(db *gorm.DB, partner *models.Partner) error {
	return db.Save(partner).Error
}

func (r *ContentRepositoryImpl) DeletePartner(db *gorm.DB, id string) error {
	return deleteByID(db, &models.Partner{}, id, ErrPartnerNotFound)
}

func (r *ContentRepositoryImpl) PartnerLogos(db *gorm.DB) ([]string, error) {
	var paths []string
	err := db.Model(&models.Partner{}).Pluck("logo", &paths).Error
	return paths, err
}

// --- Features ---

func (r *ContentRepositoryImpl) CreateFeature(db *gorm.DB, feature *models.Feature) error {
	return db.Create(feature).Error
}

func (r *ContentRepositoryImpl) FindFeatureByID(db *gorm.DB, id string) (*models.Feature, error) {
	var feature models.Feature
	if err := findByID(db, &feature, id, ErrFeatureNotFound); err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *ContentRepositoryImpl) FindFeatures(db *gorm.DB) ([]models.Feature, error) {
	var features []models.Feature
	err := db.Order(orderedByDisplay).Find(&features).Error
	return features, err
}

func (r *ContentRepositoryImpl) UpdateFeature(db *gorm.DB, feature *models.Feature) error {
	return db.Save(feature).Error
}

func (r *ContentRepositoryImpl) DeleteFeature(db *gorm.DB, id string) error {
	return deleteByID(db, &models.Feature{}, id, ErrFeatureNotFound)
}

// --- Stats ---

func (r *ContentRepositoryImpl) CreateStat(db *gorm.DB, stat *models.Stat) error {
	return db.Create(stat).Error
}

func (r *ContentRepositoryImpl) FindStatByID(db *gorm.DB, id string) (*models.Stat, error) {
	var stat models.Stat
	if err := findByID(db, &stat, id, ErrStatNotFound); err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *ContentRepositoryImpl) FindStats(db *gorm.DB) ([]models.Stat, error) {
	var stats []models.Stat
	err := db.Order(orderedByDisplay).Find(&stats).Error
	return stats, err
}

func (r *ContentRepositoryImpl) UpdateStat(db *gorm.DB, stat *models.Stat) error {
	return db.Save(stat).Error
}

func (r *ContentRepositoryImpl) DeleteStat(db *gorm.DB, id string) error {
	return deleteByID(db, &models.Stat{}, id, ErrStatNotFound)
}
