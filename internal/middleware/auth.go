package middleware

import (
	"net/http"
	"strings"

	"irrigation_backend/internal/auth"
	"irrigation_backend/internal/logger"
	"irrigation_backend/pkg/apperrors"
	"irrigation_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// TokenValidator - проверка bearer-токена
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Route - метод и шаблон маршрута gin ("/api/contact/:id/status")
type Route struct {
	Method string
	Path   string
}

// AccessPolicy - статическая таблица: какой запрос публичный, какой требует токен.
//
// Порядок: Protected -> безопасные методы -> Public -> по умолчанию токен обязателен.
type AccessPolicy struct {
	Protected   map[Route]struct{}
	SafeMethods map[string]struct{}
	Public      map[Route]struct{}
}

// DefaultAccessPolicy - GET/HEAD/OPTIONS публичны, как и отправка заявки,
// смена ее статуса и логин. Загрузка файлов закрыта всегда.
func DefaultAccessPolicy(basePath string) *AccessPolicy {
	p := func(path string) string { return basePath + path }
	return &AccessPolicy{
		Protected: map[Route]struct{}{
			{http.MethodPost, p("/upload")}: {},
		},
		SafeMethods: map[string]struct{}{
			http.MethodGet:     {},
			http.MethodHead:    {},
			http.MethodOptions: {},
		},
		Public: map[Route]struct{}{
			{http.MethodPost, p("/contact")}:             {},
			{http.MethodPatch, p("/contact/:id/status")}: {},
			{http.MethodPost, p("/auth/login")}:          {},
		},
	}
}

// IsPublic решает, нужен ли токен для метода и шаблона маршрута
func (p *AccessPolicy) IsPublic(method, route string) bool {
	r := Route{Method: method, Path: route}
	if _, ok := p.Protected[r]; ok {
		return false
	}
	if _, ok := p.SafeMethods[method]; ok {
		return true
	}
	_, ok := p.Public[r]
	return ok
}

// ConditionalAuth проверяет токен только на закрытых маршрутах.
// При отказе хендлер не вызывается, ответ 401.
func ConditionalAuth(policy *AccessPolicy, validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.IsPublic(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.CtxWarn(c.Request.Context(), "Missing bearer token", "path", c.Request.URL.Path, "method", c.Request.Method)
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := validator.ValidateToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Invalid bearer token", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.AdminIDKey, claims.AdminID)
		c.Request = c.Request.WithContext(logger.WithAdminID(c.Request.Context(), claims.AdminID))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// GetAdminID извлекает id администратора из контекста
func GetAdminID(c *gin.Context) string {
	id, _ := c.Get(contextkeys.AdminIDKey)
	s, _ := id.(string)
	return s
}
