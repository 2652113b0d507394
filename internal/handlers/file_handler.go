package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/storage"
	"irrigation_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler отдает загруженные файлы. Картинки встраиваются сайтами
// с другого origin, поэтому заголовки разрешают кросс-доменное чтение.
type FileHandler struct {
	storage storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{storage: store}
}

// RegisterRoutes вешает раздачу на корневой роутер: /uploads/{uploadType}/{file}
func (h *FileHandler) RegisterRoutes(r gin.IRoutes, prefix string) {
	prefix = "/" + strings.Trim(prefix, "/")
	r.GET(prefix+"/*filepath", h.ServeFile)
	r.HEAD(prefix+"/*filepath", h.ServeFile)
}

// ServeFile godoc
// @Summary Файл из хранилища
// @Tags upload
// @Param filepath path string true "uploadType/имя файла"
// @Success 200 {file} binary
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /uploads/{filepath} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")

	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Cross-Origin-Resource-Policy", "cross-origin")

	if rel == "" {
		apperrors.HandleError(c, apperrors.NotFound("file", "/"))
		return
	}

	file, err := h.storage.Open(c.Request.Context(), rel)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrInvalidPath) {
			logger.CtxWithError(c.Request.Context(), "Failed to open stored file", err, "path", rel)
		}
		apperrors.HandleError(c, apperrors.NotFound("file", rel))
		return
	}
	defer file.Close()

	var modTime time.Time
	if st, ok := file.(interface{ Stat() (fs.FileInfo, error) }); ok {
		info, err := st.Stat()
		if err != nil || info.IsDir() {
			apperrors.HandleError(c, apperrors.NotFound("file", rel))
			return
		}
		modTime = info.ModTime()
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(c.Writer, c.Request, path.Base(rel), modTime, file)
}
