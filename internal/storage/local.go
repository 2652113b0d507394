package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/uploads"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:  abs,
		urlPrefix: "/" + strings.Trim(cfg.URLPrefix, "/"),
	}, nil
}

// BasePath - абсолютный корень хранилища
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// FullPath переводит относительный путь в путь на диске, не выпуская за корень
func (s *LocalStorage) FullPath(p string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Save пишет во временный файл рядом с целевым и переименовывает его,
// так что читатели никогда не видят недописанный файл
func (s *LocalStorage) Save(ctx context.Context, p string, reader io.Reader, limit int64) (int64, error) {
	fullPath, err := s.FullPath(p)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	src := reader
	if limit > 0 {
		// на байт больше лимита, чтобы отличить "ровно лимит" от "больше"
		src = io.LimitReader(reader, limit+1)
	}

	written, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: src})
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if limit > 0 && written > limit {
		return 0, ErrTooLarge
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return 0, fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return 0, fmt.Errorf("failed to move file into place: %w", err)
	}
	committed = true

	return written, nil
}

func (s *LocalStorage) Open(ctx context.Context, p string) (io.ReadSeekCloser, error) {
	fullPath, err := s.FullPath(p)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	fullPath, err := s.FullPath(p)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(p string) string {
	return s.urlPrefix + "/" + strings.TrimLeft(p, "/")
}

func (s *LocalStorage) Stat(ctx context.Context, p string) (FileInfo, error) {
	fullPath, err := s.FullPath(p)
	if err != nil {
		return FileInfo{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		return FileInfo{}, ErrNotFound
	}
	return FileInfo{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// List обходит корень; временные файлы недописанных загрузок пропускаются
func (s *LocalStorage) List(ctx context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}
	return out, nil
}

// ctxReader прерывает копирование при отмене запроса
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
