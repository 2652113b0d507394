package client

import "time"

// Поля как в JSON ответах API

type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	Entity
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	Entity
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Sizes       []string  `json:"sizes"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	CategoryID  string    `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
}

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Sizes       []string `json:"sizes"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
	CategoryID  string   `json:"categoryId"`
}

type GalleryItem struct {
	Entity
	GalleryItemInput
}

type GalleryItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

type DownloadItem struct {
	Entity
	DownloadItemInput
}

type DownloadItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"`
	FileSize    string `json:"fileSize"`
	FileType    string `json:"fileType"`
	Category    string `json:"category"`
}

type ContactStatus string

const (
	ContactPending    ContactStatus = "PENDING"
	ContactInProgress ContactStatus = "IN_PROGRESS"
	ContactResponded  ContactStatus = "RESPONDED"
	ContactClosed     ContactStatus = "CLOSED"
)

type ContactSubmission struct {
	Entity
	ContactInput
	Status ContactStatus `json:"status"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type Partner struct {
	Entity
	PartnerInput
}

type PartnerInput struct {
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Order int    `json:"order"`
}

type Feature struct {
	Entity
	FeatureInput
}

type FeatureInput struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type Stat struct {
	Entity
	StatInput
}

type StatInput struct {
	Number string `json:"number"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Order  int    `json:"order"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Upload - дескриптор сохраненного файла; FilePath записывается в поле сущности
type Upload struct {
	FilePath     string `json:"filePath"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}
