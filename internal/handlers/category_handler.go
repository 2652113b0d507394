package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService services.CategoryService
	productService  services.ProductService
}

func NewCategoryHandler(base *BaseHandler, categoryService services.CategoryService, productService services.ProductService) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
		productService:  productService,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.GET("/:id/products", h.ListCategoryProducts)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// ListCategories godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Категория по ID
// @Tags categories
// @Produce json
// @Param id path string true "ID категории"
// @Success 200 {object} models.Category
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListCategoryProducts godoc
// @Summary Товары категории
// @Tags categories
// @Produce json
// @Param id path string true "ID категории"
// @Success 200 {array} models.Product
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /categories/{id}/products [get]
func (h *CategoryHandler) ListCategoryProducts(c *gin.Context) {
	products, err := h.productService.ListCategoryProducts(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateCategory godoc
// @Summary Создать категорию
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "Категория"
// @Success 201 {object} models.Category
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Имя занято"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Обновить категорию
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Param request body dto.CategoryRequest true "Категория"
// @Success 200 {object} models.Category
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Удалить категорию
// @Description Категорию с товарами удалить нельзя (409).
// @Tags categories
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
