// Package site renders the public read-only pages from the same services
// that back the REST API.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"irrigation_backend/internal/icons"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/models"
	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/contextkeys"
	"irrigation_backend/pkg/mediaurl"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "products", "gallery", "downloads"}

type Options struct {
	Title string
	// PublicOrigin дописывается к путям /uploads/... в src и href
	PublicOrigin string
	// UploadPrefix - префикс файлов хранилища, по умолчанию "/uploads"
	UploadPrefix string
}

// Services - источники данных страниц
type Services struct {
	Categories services.CategoryService
	Products   services.ProductService
	Gallery    services.GalleryService
	Downloads  services.DownloadService
	Content    services.ContentService
}

type Site struct {
	opts      Options
	svc       Services
	templates map[string]*template.Template
}

func New(opts Options, svc Services) (*Site, error) {
	if opts.UploadPrefix == "" {
		opts.UploadPrefix = mediaurl.DefaultUploadPrefix
	}
	funcs := template.FuncMap{
		"media": func(v string) any { return mediaSrc(v, opts.PublicOrigin, opts.UploadPrefix) },
		"icon":  icons.Lookup,
	}

	s := &Site{opts: opts, svc: svc, templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		s.templates[name] = t
	}
	return s, nil
}

func (s *Site) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", s.Home)
	r.GET("/products", s.Products)
	r.GET("/gallery", s.Gallery)
	r.GET("/downloads", s.Downloads)
}

// ============================================================================
// Страницы
// ============================================================================

type homeData struct {
	Featured []models.Product
	Features []models.Feature
	Stats    []models.Stat
	Partners []models.Partner
}

func (s *Site) Home(c *gin.Context) {
	ctx, db := c.Request.Context(), dbFrom(c)
	featured := true

	var data homeData
	var err error
	if data.Featured, err = s.svc.Products.ListProducts(ctx, db, &dto.ProductFilter{Featured: &featured}); err != nil {
		s.fail(c, err)
		return
	}
	if data.Features, err = s.svc.Content.ListFeatures(ctx, db); err != nil {
		s.fail(c, err)
		return
	}
	if data.Stats, err = s.svc.Content.ListStats(ctx, db); err != nil {
		s.fail(c, err)
		return
	}
	if data.Partners, err = s.svc.Content.ListPartners(ctx, db); err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, "home", "", data)
}

type productsData struct {
	Categories []models.Category
	Selected   string
	Products   []models.Product
}

func (s *Site) Products(c *gin.Context) {
	ctx, db := c.Request.Context(), dbFrom(c)
	data := productsData{Selected: c.Query("category")}

	var err error
	if data.Categories, err = s.svc.Categories.ListCategories(ctx, db); err != nil {
		s.fail(c, err)
		return
	}
	if data.Products, err = s.svc.Products.ListProducts(ctx, db, &dto.ProductFilter{Category: data.Selected}); err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, "products", "Продукция", data)
}

type galleryData struct {
	Selected string
	Items    []models.GalleryItem
}

func (s *Site) Gallery(c *gin.Context) {
	data := galleryData{Selected: c.Query("category")}

	items, err := s.svc.Gallery.ListGallery(c.Request.Context(), dbFrom(c), &dto.TagFilter{Category: data.Selected})
	if err != nil {
		s.fail(c, err)
		return
	}
	data.Items = items
	s.render(c, "gallery", "Галерея", data)
}

type downloadsData struct {
	Selected string
	Items    []models.DownloadItem
}

func (s *Site) Downloads(c *gin.Context) {
	data := downloadsData{Selected: c.Query("category")}

	items, err := s.svc.Downloads.ListDownloads(c.Request.Context(), dbFrom(c), &dto.TagFilter{Category: data.Selected})
	if err != nil {
		s.fail(c, err)
		return
	}
	data.Items = items
	s.render(c, "downloads", "Документация", data)
}

// ============================================================================
// Вспомогательные
// ============================================================================

type pageData struct {
	SiteTitle string
	Title     string
	Page      string
	Data      any
}

func (s *Site) render(c *gin.Context, page, title string, data any) {
	c.Render(http.StatusOK, render.HTML{
		Template: s.templates[page],
		Name:     "layout.html",
		Data: pageData{
			SiteTitle: s.opts.Title,
			Title:     title,
			Page:      page,
			Data:      data,
		},
	})
}

func (s *Site) fail(c *gin.Context, err error) {
	logger.CtxWithError(c.Request.Context(), "Failed to render site page", err, "path", c.Request.URL.Path)
	c.String(http.StatusInternalServerError, "Страница временно недоступна")
}

// mediaSrc помечает проверенные пути как безопасные URL, иначе html/template
// заменил бы data: на #ZgotmplZ. Остальное экранируется как обычно.
func mediaSrc(v, origin, uploadPrefix string) any {
	switch mediaurl.ClassifyWithPrefix(v, uploadPrefix) {
	case mediaurl.KindAbsolute, mediaurl.KindServerRelative:
		return template.URL(mediaurl.ResolveWithPrefix(v, origin, uploadPrefix))
	default:
		return v
	}
}

func dbFrom(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	panic("critical error: DBMiddleware did not set the db key")
}
