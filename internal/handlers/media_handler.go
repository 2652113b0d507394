package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// Галерея
// ============================================================================

type GalleryHandler struct {
	*BaseHandler
	galleryService services.GalleryService
}

func NewGalleryHandler(base *BaseHandler, galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler:    base,
		galleryService: galleryService,
	}
}

func (h *GalleryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gallery := rg.Group("/gallery")
	{
		gallery.GET("", h.ListGallery)
		gallery.GET("/:id", h.GetGalleryItem)
		gallery.POST("", h.CreateGalleryItem)
		gallery.PUT("/:id", h.UpdateGalleryItem)
		gallery.DELETE("/:id", h.DeleteGalleryItem)
	}
}

// ListGallery godoc
// @Summary Галерея
// @Tags gallery
// @Produce json
// @Param category query string false "Тег категории"
// @Success 200 {array} models.GalleryItem
// @Router /gallery [get]
func (h *GalleryHandler) ListGallery(c *gin.Context) {
	var filter dto.TagFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	items, err := h.galleryService.ListGallery(c.Request.Context(), h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetGalleryItem godoc
// @Summary Элемент галереи по ID
// @Tags gallery
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.GalleryItem
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gallery/{id} [get]
func (h *GalleryHandler) GetGalleryItem(c *gin.Context) {
	item, err := h.galleryService.GetGalleryItem(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGalleryItem godoc
// @Summary Добавить в галерею
// @Tags gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GalleryItemRequest true "Элемент"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /gallery [post]
func (h *GalleryHandler) CreateGalleryItem(c *gin.Context) {
	var req dto.GalleryItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.galleryService.CreateGalleryItem(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateGalleryItem godoc
// @Summary Обновить элемент галереи
// @Tags gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.GalleryItemRequest true "Элемент"
// @Success 200 {object} models.GalleryItem
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gallery/{id} [put]
func (h *GalleryHandler) UpdateGalleryItem(c *gin.Context) {
	var req dto.GalleryItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.galleryService.UpdateGalleryItem(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteGalleryItem godoc
// @Summary Удалить элемент галереи
// @Tags gallery
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) DeleteGalleryItem(c *gin.Context) {
	if err := h.galleryService.DeleteGalleryItem(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Загрузки (документы)
// ============================================================================

type DownloadHandler struct {
	*BaseHandler
	downloadService services.DownloadService
}

func NewDownloadHandler(base *BaseHandler, downloadService services.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		BaseHandler:     base,
		downloadService: downloadService,
	}
}

func (h *DownloadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	downloads := rg.Group("/downloads")
	{
		downloads.GET("", h.ListDownloads)
		downloads.GET("/:id", h.GetDownload)
		downloads.POST("", h.CreateDownload)
		downloads.PUT("/:id", h.UpdateDownload)
		downloads.DELETE("/:id", h.DeleteDownload)
	}
}

// ListDownloads godoc
// @Summary Список документов
// @Tags downloads
// @Produce json
// @Param category query string false "Тег категории"
// @Success 200 {array} models.DownloadItem
// @Router /downloads [get]
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	var filter dto.TagFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	items, err := h.downloadService.ListDownloads(c.Request.Context(), h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetDownload godoc
// @Summary Документ по ID
// @Tags downloads
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.DownloadItem
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /downloads/{id} [get]
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	item, err := h.downloadService.GetDownload(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateDownload godoc
// @Summary Добавить документ
// @Tags downloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DownloadItemRequest true "Документ"
// @Success 201 {object} models.DownloadItem
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /downloads [post]
func (h *DownloadHandler) CreateDownload(c *gin.Context) {
	var req dto.DownloadItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.downloadService.CreateDownload(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateDownload godoc
// @Summary Обновить документ
// @Tags downloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.DownloadItemRequest true "Документ"
// @Success 200 {object} models.DownloadItem
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /downloads/{id} [put]
func (h *DownloadHandler) UpdateDownload(c *gin.Context) {
	var req dto.DownloadItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.downloadService.UpdateDownload(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteDownload godoc
// @Summary Удалить документ
// @Tags downloads
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /downloads/{id} [delete]
func (h *DownloadHandler) DeleteDownload(c *gin.Context) {
	if err := h.downloadService.DeleteDownload(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
