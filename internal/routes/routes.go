package routes

import (
	"irrigation_backend/internal/handlers"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Options - параметры регистрации маршрутов
type Options struct {
	BasePath     string // "/api"
	UploadPrefix string // "/uploads"
}

// RegisterRoutes регистрирует все HTTP маршруты API и раздачу файлов.
//
// Проверка токена висит на группе API и решается по таблице policy
// для шаблона маршрута, а не по пути запроса.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	policy *middleware.AccessPolicy,
	tokens middleware.TokenValidator,
	opts Options,
) {
	api := ginRouter.Group(opts.BasePath)
	api.Use(middleware.ConditionalAuth(policy, tokens))
	{
		api.GET("/health", handlers.Health)

		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.CategoryHandler.RegisterRoutes(api)
		appHandlers.ProductHandler.RegisterRoutes(api)
		appHandlers.GalleryHandler.RegisterRoutes(api)
		appHandlers.DownloadHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
		appHandlers.ContentHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
	}

	// Файлы публичны и лежат вне base path
	appHandlers.FileHandler.RegisterRoutes(ginRouter, opts.UploadPrefix)

	if opts.BasePath != "" && opts.BasePath != "/" {
		ginRouter.GET("/health", handlers.Health)
	}

	logger.Info("HTTP routes registered", "base_path", opts.BasePath, "uploads", opts.UploadPrefix)
}
