package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	CategoryService CategoryService
	ProductService  ProductService
	GalleryService  GalleryService
	DownloadService DownloadService
	ContactService  ContactService
	ContentService  ContentService
	UploadService   UploadService
}
