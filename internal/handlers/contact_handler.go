package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contact := rg.Group("/contact")
	{
		contact.GET("", h.ListContacts)
		contact.GET("/:id", h.GetContact)
		contact.POST("", h.CreateContact)
		contact.PUT("/:id", h.UpdateContact)
		contact.PATCH("/:id/status", h.UpdateContactStatus)
		contact.DELETE("/:id", h.DeleteContact)
	}
}

// ListContacts godoc
// @Summary Заявки
// @Description Новые сверху.
// @Tags contact
// @Produce json
// @Param status query string false "PENDING, IN_PROGRESS, RESPONDED, CLOSED"
// @Success 200 {array} models.ContactSubmission
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /contact [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var filter dto.ContactFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// GetContact godoc
// @Summary Заявка по ID
// @Tags contact
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} models.ContactSubmission
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /contact/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.contactService.GetContact(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// CreateContact godoc
// @Summary Отправить заявку
// @Description Публичный маршрут. Статус новой заявки - PENDING.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Заявка"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// UpdateContact godoc
// @Summary Обновить заявку
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param request body dto.ContactRequest true "Заявка"
// @Success 200 {object} models.ContactSubmission
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /contact/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpdateContactStatus godoc
// @Summary Сменить статус заявки
// @Tags contact
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param request body dto.ContactStatusRequest true "Статус"
// @Success 200 {object} models.ContactSubmission
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /contact/{id}/status [patch]
func (h *ContactHandler) UpdateContactStatus(c *gin.Context) {
	var req dto.ContactStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContactStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Удалить заявку
// @Tags contact
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /contact/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.contactService.DeleteContact(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
