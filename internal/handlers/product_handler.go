package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	*BaseHandler
	productService services.ProductService
}

func NewProductHandler(base *BaseHandler, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    base,
		productService: productService,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts godoc
// @Summary Список товаров
// @Description Фильтр category принимает id или имя категории.
// @Tags products
// @Produce json
// @Param category query string false "ID или имя категории"
// @Param featured query bool false "Только избранные"
// @Success 200 {array} models.Product
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter dto.ProductFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Товар по ID
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} models.Product
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Создать товар
// @Description image - путь из POST /upload или абсолютный URL.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductRequest true "Товар"
// @Success 201 {object} models.Product
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Обновить товар
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param request body dto.ProductRequest true "Товар"
// @Success 200 {object} models.Product
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
