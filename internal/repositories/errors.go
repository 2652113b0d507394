package repositories

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrGalleryNotFound  = errors.New("gallery item not found")
	ErrDownloadNotFound = errors.New("download item not found")
	ErrContactNotFound  = errors.New("contact submission not found")
	ErrPartnerNotFound  = errors.New("partner not found")
	ErrFeatureNotFound  = errors.New("feature not found")
	ErrStatNotFound     = errors.New("stat not found")
	ErrAdminNotFound    = errors.New("admin user not found")
)

// orderedByDisplay - порядок вывода, при равенстве - порядок вставки:
// created_at строго растет (models.BaseModel), id нужен только для детерминизма
const orderedByDisplay = "display_order ASC, created_at ASC, id ASC"
