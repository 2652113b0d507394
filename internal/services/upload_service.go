package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/metrics"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/internal/storage"
	"irrigation_backend/pkg/apperrors"
	"irrigation_backend/pkg/mediaurl"

	"gorm.io/gorm"
)

// ============================================
// UPLOAD SERVICE
// ============================================

// UploadService сохраняет файл в подкаталог своего uploadType и возвращает путь,
// который клиент затем записывает в поле сущности. Файл с записью не связан:
// если запись так и не сохранилась, файл остается сиротой до ручной чистки.
type UploadService interface {
	Upload(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResponse, error)

	// FindOrphans - файлы хранилища, на которые не ссылается ни одна запись.
	// Файлы моложе opts.MinAge не считаются: их запись может быть еще в пути.
	FindOrphans(ctx context.Context, db *gorm.DB, opts dto.SweepOptions) (*dto.OrphanReport, error)
	// RemoveOrphans удаляет найденные файлы
	RemoveOrphans(ctx context.Context, db *gorm.DB, opts dto.SweepOptions) (*dto.OrphanReport, error)
}

type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string // MIME; пусто - любые
	DefaultType  string
	URLPrefix    string // под ним хранилище отдает файлы, "/uploads"
}

// MediaReferences - источники путей, сохраненных в записях
type MediaReferences struct {
	Products  repositories.ProductRepository
	Gallery   repositories.GalleryRepository
	Downloads repositories.DownloadRepository
	Content   repositories.ContentRepository
}

type uploadService struct {
	storage  storage.Storage
	config   UploadConfig
	refs     MediaReferences
	observer metrics.UploadObserver
	now      func() time.Time
}

var (
	uploadTypePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	unsafeNameChars   = regexp.MustCompile(`[^A-Za-z0-9.-]`)
)

const maxUploadTypeLen = 50

func NewUploadService(store storage.Storage, config UploadConfig, refs MediaReferences, observer metrics.UploadObserver) UploadService {
	if config.DefaultType == "" {
		config.DefaultType = "general"
	}
	if config.URLPrefix == "" {
		config.URLPrefix = mediaurl.DefaultUploadPrefix
	}
	if observer == nil {
		observer = metrics.NopObserver{}
	}
	return &uploadService{
		storage:  store,
		config:   config,
		refs:     refs,
		observer: observer,
		now:      time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, req *dto.UploadRequest) (resp *dto.UploadResponse, err error) {
	start := s.now()
	uploadType := s.config.DefaultType
	var stored string
	var size int64

	defer func() {
		s.observer.RecordUpload(uploadType, time.Since(start), size, err)
		logger.UploadLog(uploadType, stored, size, time.Since(start), err)
	}()

	if req.File == nil {
		return nil, apperrors.ErrNoFile
	}

	normalized, err := NormalizeUploadType(req.UploadType, s.config.DefaultType)
	if err != nil {
		uploadType = "invalid"
		return nil, err
	}
	uploadType = normalized

	if s.config.MaxFileSize > 0 && req.File.Size > s.config.MaxFileSize {
		return nil, fileTooLarge(s.config.MaxFileSize)
	}

	mimeType := detectMimeType(req.File.Header.Get("Content-Type"), req.File.Filename)
	if !s.typeAllowed(mimeType) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"mimeType": mimeType})
	}

	fileName := GenerateFileName(s.now(), rand.Intn(1_000_000_000), req.File.Filename)
	rel := path.Join(uploadType, fileName)

	src, err := req.File.Open()
	if err != nil {
		return nil, apperrors.ErrUploadFailed(fmt.Errorf("open multipart file: %w", err))
	}
	defer src.Close()

	size, err = s.storage.Save(ctx, rel, src, s.config.MaxFileSize)
	if err != nil {
		size = 0
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, fileTooLarge(s.config.MaxFileSize)
		}
		return nil, apperrors.ErrUploadFailed(err)
	}
	stored = rel

	return &dto.UploadResponse{
		FilePath:     s.storage.GetURL(rel),
		FileName:     fileName,
		OriginalName: req.File.Filename,
		MimeType:     mimeType,
		Size:         size,
	}, nil
}

func (s *uploadService) FindOrphans(ctx context.Context, db *gorm.DB, opts dto.SweepOptions) (*dto.OrphanReport, error) {
	referenced, err := s.referencedPaths(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	now := s.now()
	report := &dto.OrphanReport{Scanned: len(files), Orphans: []string{}}
	for _, f := range files {
		if _, ok := referenced[s.storage.GetURL(f)]; ok {
			continue
		}
		info, err := s.storage.Stat(ctx, f)
		if errors.Is(err, storage.ErrNotFound) {
			continue // удален между List и Stat
		}
		if err != nil {
			return nil, storageError(err)
		}
		if now.Sub(info.ModTime) < opts.MinAge {
			report.Recent++
			continue
		}
		report.Orphans = append(report.Orphans, f)
		report.Bytes += info.Size
	}
	return report, nil
}

func (s *uploadService) RemoveOrphans(ctx context.Context, db *gorm.DB, opts dto.SweepOptions) (*dto.OrphanReport, error) {
	report, err := s.FindOrphans(ctx, db, opts)
	if err != nil {
		return nil, err
	}
	for _, f := range report.Orphans {
		if err := s.storage.Delete(ctx, f); err != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned upload", err, "path", f)
			continue
		}
		report.Removed++
	}
	logger.CtxInfo(ctx, "Orphaned uploads removed",
		"removed", report.Removed, "found", len(report.Orphans), "recent", report.Recent, "min_age", opts.MinAge.String())
	return report, nil
}

// referencedPaths - множество серверных путей ("/uploads/...") из всех записей.
// Абсолютные URL на наш же префикс тоже учитываются.
func (s *uploadService) referencedPaths(db *gorm.DB) (map[string]struct{}, error) {
	sources := []func(*gorm.DB) ([]string, error){}
	if s.refs.Products != nil {
		sources = append(sources, s.refs.Products.ProductImages)
	}
	if s.refs.Gallery != nil {
		sources = append(sources, s.refs.Gallery.GalleryImages)
	}
	if s.refs.Downloads != nil {
		sources = append(sources, s.refs.Downloads.DownloadFiles)
	}
	if s.refs.Content != nil {
		sources = append(sources, s.refs.Content.PartnerLogos)
	}

	out := make(map[string]struct{})
	for _, load := range sources {
		values, err := load(db)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			if p, ok := serverPath(v, s.config.URLPrefix); ok {
				out[p] = struct{}{}
			}
		}
	}
	return out, nil
}

func serverPath(v, prefix string) (string, bool) {
	v = strings.TrimSpace(v)
	switch mediaurl.ClassifyWithPrefix(v, prefix) {
	case mediaurl.KindServerRelative:
		return v, true
	case mediaurl.KindAbsolute:
		u, err := url.Parse(v)
		if err != nil || !mediaurl.HasUploadPrefix(u.Path, prefix) {
			return "", false
		}
		return u.Path, true
	default:
		return "", false
	}
}

func storageError(err error) error {
	return apperrors.Wrap(err, apperrors.CodeStorageError, "upload", "Failed to inspect stored files", 500)
}

func (s *uploadService) typeAllowed(mimeType string) bool {
	if len(s.config.AllowedTypes) == 0 {
		return true
	}
	for _, t := range s.config.AllowedTypes {
		if strings.EqualFold(t, mimeType) {
			return true
		}
		// "image/*"
		if strings.HasSuffix(t, "/*") && strings.HasPrefix(mimeType, strings.TrimSuffix(t, "*")) {
			return true
		}
	}
	return false
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

// NormalizeUploadType приводит классификатор к нижнему регистру и проверяет,
// что он годится как имя одного каталога
func NormalizeUploadType(raw, def string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		t = def
	}
	if len(t) > maxUploadTypeLen || !uploadTypePattern.MatchString(t) {
		return "", apperrors.ErrInvalidUploadType
	}
	return t, nil
}

// SanitizeFileName заменяет все, кроме [A-Za-z0-9.-], на "_", включая крайние пробелы
func SanitizeFileName(name string) string {
	if name == "" {
		return "file"
	}
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// GenerateFileName - "{unixMillis}-{random}-{sanitized}"
func GenerateFileName(now time.Time, random int, original string) string {
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), random, SanitizeFileName(original))
}

// detectMimeType: заявленный тип клиента, а для пустого и octet-stream - по расширению
func detectMimeType(declared, fileName string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	return "application/octet-stream"
}

func fileTooLarge(limit int64) error {
	return apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": limit})
}
