package handlers

import (
	"errors"
	"net/http"

	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Запас на заголовки multipart поверх размера самого файла
const multipartOverhead = 1 << 20

// ============================================
// UPLOAD HANDLER
// ============================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	maxFileSize   int64
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
	}
}

// ============================================
// ROUTES
// ============================================

// RegisterRoutes - маршрут всегда закрыт токеном, см. middleware.DefaultAccessPolicy
func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload", h.UploadFile)
}

// ============================================
// HANDLERS
// ============================================

// UploadFile godoc
// @Summary Загрузить файл
// @Description Сохраняет один файл из поля file в /uploads/{uploadType}/. Возвращенный filePath затем передается в image, logo или fileUrl записи.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param uploadType query string false "Тип загрузки (products, gallery, partners...), по умолчанию general"
// @Param file formData file true "Файл"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.ErrorResponse "NO_FILE, FILE_TOO_LARGE, INVALID_UPLOAD_TYPE, INVALID_FILE_TYPE"
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	ctx := c.Request.Context()

	if h.maxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.CtxWarn(ctx, "Upload body exceeds limit", "limit", h.maxFileSize)
			apperrors.HandleError(c, apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": h.maxFileSize}))
			return
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			apperrors.HandleError(c, apperrors.ErrNoFile)
			return
		}
		logger.CtxWithError(ctx, "Failed to parse multipart form", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}
	defer func() {
		if c.Request.MultipartForm != nil {
			_ = c.Request.MultipartForm.RemoveAll()
		}
	}()

	files := c.Request.MultipartForm.File["file"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.ErrNoFile)
		return
	}
	if len(files) > 1 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("exactly one file is expected in field 'file'"))
		return
	}

	uploadType := c.Query("uploadType")
	if uploadType == "" {
		uploadType = c.PostForm("uploadType")
	}

	req := dto.UploadRequest{
		UploadType: uploadType,
		File:       files[0],
	}

	response, err := h.uploadService.Upload(ctx, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
