package dto

import (
	"mime/multipart"
	"time"
)

// UploadRequest - один файл из поля "file" и классификатор uploadType
type UploadRequest struct {
	UploadType string
	File       *multipart.FileHeader
}

// UploadResponse - дескриптор сохраненного файла.
// FilePath затем сохраняется в поле image/logo/fileUrl записи.
type UploadResponse struct {
	FilePath     string `json:"filePath"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

// OrphanReport - результат проверки файлов без ссылок
type OrphanReport struct {
	Scanned int      `json:"scanned"`
	Orphans []string `json:"orphans"`
	Bytes   int64    `json:"bytes"`  // суммарный размер сирот
	Recent  int      `json:"recent"` // без ссылок, но моложе MinAge
	Removed int      `json:"removed"`
}

// SweepOptions - параметры поиска сирот
type SweepOptions struct {
	MinAge time.Duration
	Remove bool
}
