package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	GalleryHandler  *GalleryHandler
	DownloadHandler *DownloadHandler
	ContactHandler  *ContactHandler
	ContentHandler  *ContentHandler
	UploadHandler   *UploadHandler
	FileHandler     *FileHandler
}
