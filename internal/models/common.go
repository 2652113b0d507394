package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - общие поля всех сущностей
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index;precision:6" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate генерирует UUID и проставляет created_at, если они не заданы
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = nextCreatedAt()
	}
	return nil
}

var (
	createdMu   sync.Mutex
	lastCreated time.Time
)

// nextCreatedAt строго растет в пределах процесса с шагом не меньше микросекунды,
// поэтому сортировка по created_at совпадает с порядком вставки
func nextCreatedAt() time.Time {
	createdMu.Lock()
	defer createdMu.Unlock()

	now := time.Now().Truncate(time.Microsecond)
	if !now.After(lastCreated) {
		now = lastCreated.Add(time.Microsecond)
	}
	lastCreated = now
	return now
}

// All - список моделей для миграции. Category раньше Product из-за FK.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&GalleryItem{},
		&DownloadItem{},
		&ContactSubmission{},
		&Partner{},
		&Feature{},
		&Stat{},
		&AdminUser{},
	}
}
