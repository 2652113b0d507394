package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ContentHandler - блоки главной страницы: партнеры, преимущества, цифры.
// Списки отдаются по полю order.
type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partners := rg.Group("/partners")
	{
		partners.GET("", h.ListPartners)
		partners.GET("/:id", h.GetPartner)
		partners.POST("", h.CreatePartner)
		partners.PUT("/:id", h.UpdatePartner)
		partners.DELETE("/:id", h.DeletePartner)
	}
	features := rg.Group("/features")
	{
		features.GET("", h.ListFeatures)
		features.GET("/:id", h.GetFeature)
		features.POST("", h.CreateFeature)
		features.PUT("/:id", h.UpdateFeature)
		features.DELETE("/:id", h.DeleteFeature)
	}
	stats := rg.Group("/stats")
	{
		stats.GET("", h.ListStats)
		stats.GET("/:id", h.GetStat)
		stats.POST("", h.CreateStat)
		stats.PUT("/:id", h.UpdateStat)
		stats.DELETE("/:id", h.DeleteStat)
	}
}

// ============================================================================
// Партнеры
// ============================================================================

// ListPartners godoc
// @Summary Партнеры
// @Tags partners
// @Produce json
// @Success 200 {array} models.Partner
// @Router /partners [get]
func (h *ContentHandler) ListPartners(c *gin.Context) {
	items, err := h.contentService.ListPartners(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetPartner godoc
// @Summary Партнер по ID
// @Tags partners
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.Partner
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /partners/{id} [get]
func (h *ContentHandler) GetPartner(c *gin.Context) {
	item, err := h.contentService.GetPartner(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreatePartner godoc
// @Summary Создать: Партнер
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PartnerRequest true "Партнер"
// @Success 201 {object} models.Partner
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /partners [post]
func (h *ContentHandler) CreatePartner(c *gin.Context) {
	var req dto.PartnerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.CreatePartner(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdatePartner godoc
// @Summary Обновить: Партнер
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.PartnerRequest true "Партнер"
// @Success 200 {object} models.Partner
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /partners/{id} [put]
func (h *ContentHandler) UpdatePartner(c *gin.Context) {
	var req dto.PartnerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.UpdatePartner(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePartner godoc
// @Summary Удалить: Партнер
// @Tags partners
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /partners/{id} [delete]
func (h *ContentHandler) DeletePartner(c *gin.Context) {
	if err := h.contentService.DeletePartner(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Преимущества
// ============================================================================

// ListFeatures godoc
// @Summary Преимущества
// @Tags features
// @Produce json
// @Success 200 {array} models.Feature
// @Router /features [get]
func (h *ContentHandler) ListFeatures(c *gin.Context) {
	items, err := h.contentService.ListFeatures(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetFeature godoc
// @Summary Преимущество по ID
// @Tags features
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.Feature
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /features/{id} [get]
func (h *ContentHandler) GetFeature(c *gin.Context) {
	item, err := h.contentService.GetFeature(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateFeature godoc
// @Summary Создать: Преимущество
// @Tags features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FeatureRequest true "Преимущество"
// @Success 201 {object} models.Feature
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /features [post]
func (h *ContentHandler) CreateFeature(c *gin.Context) {
	var req dto.FeatureRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.CreateFeature(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateFeature godoc
// @Summary Обновить: Преимущество
// @Tags features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.FeatureRequest true "Преимущество"
// @Success 200 {object} models.Feature
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /features/{id} [put]
func (h *ContentHandler) UpdateFeature(c *gin.Context) {
	var req dto.FeatureRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.UpdateFeature(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteFeature godoc
// @Summary Удалить: Преимущество
// @Tags features
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /features/{id} [delete]
func (h *ContentHandler) DeleteFeature(c *gin.Context) {
	if err := h.contentService.DeleteFeature(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Показатели
// ============================================================================

// ListStats godoc
// @Summary Показатели
// @Tags stats
// @Produce json
// @Success 200 {array} models.Stat
// @Router /stats [get]
func (h *ContentHandler) ListStats(c *gin.Context) {
	items, err := h.contentService.ListStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetStat godoc
// @Summary Показатель по ID
// @Tags stats
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.Stat
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /stats/{id} [get]
func (h *ContentHandler) GetStat(c *gin.Context) {
	item, err := h.contentService.GetStat(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateStat godoc
// @Summary Создать: Показатель
// @Tags stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StatRequest true "Показатель"
// @Success 201 {object} models.Stat
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /stats [post]
func (h *ContentHandler) CreateStat(c *gin.Context) {
	var req dto.StatRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.CreateStat(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateStat godoc
// @Summary Обновить: Показатель
// @Tags stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.StatRequest true "Показатель"
// @Success 200 {object} models.Stat
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /stats/{id} [put]
func (h *ContentHandler) UpdateStat(c *gin.Context) {
	var req dto.StatRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.UpdateStat(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteStat godoc
// @Summary Удалить: Показатель
// @Tags stats
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /stats/{id} [delete]
func (h *ContentHandler) DeleteStat(c *gin.Context) {
	if err := h.contentService.DeleteStat(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
