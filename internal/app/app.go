package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "irrigation_backend/docs"
	"irrigation_backend/internal/auth"
	"irrigation_backend/internal/config"
	"irrigation_backend/internal/database"
	"irrigation_backend/internal/email"
	"irrigation_backend/internal/handlers"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/metrics"
	"irrigation_backend/internal/middleware"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/routes"
	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/internal/site"
	"irrigation_backend/internal/storage"
	"irrigation_backend/internal/validator"
	"irrigation_backend/pkg/mediaurl"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps - внешние зависимости, которые можно подменить (тесты, CLI)
type Deps struct {
	Storage  storage.Storage
	Metrics  *metrics.Metrics
	Notifier services.ContactNotifier
}

// App - собранное приложение: роутер, сервисы и их зависимости
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	router   *gin.Engine
	services *services.ServiceContainer
	deps     Deps
}

func (a *App) Router() *gin.Engine                  { return a.router }
func (a *App) Services() *services.ServiceContainer { return a.services }
func (a *App) Storage() storage.Storage             { return a.deps.Storage }

// ============================================================================
// Точки входа
// ============================================================================

// Run - полный цикл сервера: конфиг, логгер, БД, миграции, админ, HTTP
func Run(ctx context.Context, cfg *config.Config) error {
	gormDB, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(gormDB)

	if err := database.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	application, err := New(cfg, gormDB, Deps{})
	if err != nil {
		return err
	}

	if err := application.SeedFirstAdmin(ctx); err != nil {
		// Без админа закрытые маршруты недоступны, сервер не запускаем
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	return application.Serve(ctx)
}

// Setup загружает конфиг и инициализирует логгер
func Setup(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	config.AppConfig = cfg

	logger.Init(logger.Options{
		Env:        cfg.Server.Env,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	return cfg, nil
}

// SignalContext отменяется по SIGINT/SIGTERM
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Serve слушает порт до отмены ctx, затем корректно завершает запросы
func (a *App) Serve(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address, "base_path", a.cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.Wait()
	logger.Info("Server stopped")
	return nil
}

// Wait дожидается фоновых писем о заявках
func (a *App) Wait() {
	if w, ok := a.deps.Notifier.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// ============================================================================
// Сборка
// ============================================================================

// New собирает сервисы, хэндлеры и роутер. Пустые поля deps заполняются из cfg.
func New(cfg *config.Config, gormDB *gorm.DB, deps Deps) (*App, error) {
	if deps.Storage == nil {
		storageInstance, err := storage.NewStorage(storage.Config{
			Type:      "local",
			BasePath:  cfg.Storage.BasePath,
			URLPrefix: cfg.Storage.URLPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		deps.Storage = storageInstance
		logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)
	}
	if deps.Metrics == nil {
		m, err := metrics.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		deps.Metrics = m
	}
	if deps.Notifier == nil {
		notifier, err := newContactNotifier(cfg)
		if err != nil {
			return nil, err
		}
		deps.Notifier = notifier
	}

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, deps)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, deps.Storage)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB, deps.Metrics)

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers,
		middleware.DefaultAccessPolicy(cfg.Server.BasePath),
		serviceContainer.AuthService,
		routes.Options{BasePath: cfg.Server.BasePath, UploadPrefix: cfg.Storage.URLPrefix},
	)

	ginRouter.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Site.Enabled {
		pages, err := site.New(site.Options{
			Title:        cfg.Site.Title,
			PublicOrigin: cfg.Server.PublicOrigin,
			UploadPrefix: cfg.Storage.URLPrefix,
		}, site.Services{
			Categories: serviceContainer.CategoryService,
			Products:   serviceContainer.ProductService,
			Gallery:    serviceContainer.GalleryService,
			Downloads:  serviceContainer.DownloadService,
			Content:    serviceContainer.ContentService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize site: %w", err)
		}
		pages.RegisterRoutes(ginRouter)
	}

	return &App{
		cfg:      cfg,
		db:       gormDB,
		router:   ginRouter,
		services: serviceContainer,
		deps:     deps,
	}, nil
}

func initializeServices(cfg *config.Config, deps Deps) *services.ServiceContainer {
	// --- Репозитории ---
	adminRepo := repositories.NewAdminRepository()
	categoryRepo := repositories.NewCategoryRepository()
	productRepo := repositories.NewProductRepository()
	galleryRepo := repositories.NewGalleryRepository()
	downloadRepo := repositories.NewDownloadRepository()
	contactRepo := repositories.NewContactRepository()
	contentRepo := repositories.NewContentRepository()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	uploadService := services.NewUploadService(deps.Storage, services.UploadConfig{
		MaxFileSize:  cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
		DefaultType:  cfg.Upload.DefaultType,
		URLPrefix:    cfg.Storage.URLPrefix,
	}, services.MediaReferences{
		Products:  productRepo,
		Gallery:   galleryRepo,
		Downloads: downloadRepo,
		Content:   contentRepo,
	}, deps.Metrics)

	return &services.ServiceContainer{
		AuthService:     services.NewAuthService(adminRepo, tokens),
		CategoryService: services.NewCategoryService(categoryRepo),
		ProductService:  services.NewProductService(productRepo, categoryRepo),
		GalleryService:  services.NewGalleryService(galleryRepo),
		DownloadService: services.NewDownloadService(downloadRepo),
		ContactService:  services.NewContactService(contactRepo, deps.Notifier),
		ContentService:  services.NewContentService(contentRepo),
		UploadService:   uploadService,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.NewWithOptions(validator.Options{
		UploadPrefix: cfg.Storage.URLPrefix + "/",
	})
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, svc.AuthService),
		CategoryHandler: handlers.NewCategoryHandler(baseHandler, svc.CategoryService, svc.ProductService),
		ProductHandler:  handlers.NewProductHandler(baseHandler, svc.ProductService),
		GalleryHandler:  handlers.NewGalleryHandler(baseHandler, svc.GalleryService),
		DownloadHandler: handlers.NewDownloadHandler(baseHandler, svc.DownloadService),
		ContactHandler:  handlers.NewContactHandler(baseHandler, svc.ContactService),
		ContentHandler:  handlers.NewContentHandler(baseHandler, svc.ContentService),
		UploadHandler:   handlers.NewUploadHandler(baseHandler, svc.UploadService, cfg.Upload.MaxSize),
		FileHandler:     handlers.NewFileHandler(storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(m.GinMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func newContactNotifier(cfg *config.Config) (services.ContactNotifier, error) {
	if !cfg.Email.Enabled || cfg.Email.NotifyTo == "" {
		logger.Info("Contact notifications disabled")
		return services.NoopContactNotifier{}, nil
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	provider := email.NewGomailProvider(email.FromAppConfig(cfg), templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	logger.Info("Contact notifications enabled", "smtp_host", cfg.Email.SMTPHost, "notify_to", cfg.Email.NotifyTo)
	return services.NewEmailContactNotifier(provider, cfg.Email.NotifyTo), nil
}

// SeedFirstAdmin создает администратора из конфига, если его еще нет
func (a *App) SeedFirstAdmin(ctx context.Context) error {
	adminEmail := a.cfg.Admin.Email
	adminPassword := a.cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := a.services.AuthService.EnsureAdmin(ctx, a.db.WithContext(ctx), adminEmail, adminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "email", adminEmail)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
	}
	return nil
}

// SweepUploads ищет файлы без ссылок из записей; opts.Remove удаляет их
func (a *App) SweepUploads(ctx context.Context, opts dto.SweepOptions) (*dto.OrphanReport, error) {
	db := a.db.WithContext(ctx)
	if opts.Remove {
		return a.services.UploadService.RemoveOrphans(ctx, db, opts)
	}
	return a.services.UploadService.FindOrphans(ctx, db, opts)
}

// PublicURL - абсолютный адрес файла хранилища для вывода оператору
func (a *App) PublicURL(storedPath string) string {
	return mediaurl.ResolveWithPrefix(a.deps.Storage.GetURL(storedPath), a.cfg.Server.PublicOrigin, a.cfg.Storage.URLPrefix)
}
