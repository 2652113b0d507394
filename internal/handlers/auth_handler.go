package handlers

import (
	"net/http"

	"irrigation_backend/internal/services"
	"irrigation_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/me", h.Me)
	}
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me godoc
// @Summary Проверка токена
// @Description GET публичен, поэтому токен проверяется здесь же: без него authenticated=false.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(token) > len(prefix) {
		if claims, err := h.authService.ValidateToken(token[len(prefix):]); err == nil {
			c.JSON(http.StatusOK, gin.H{"authenticated": true, "adminId": claims.AdminID, "email": claims.Email})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Health godoc
// @Summary Проверка доступности
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
