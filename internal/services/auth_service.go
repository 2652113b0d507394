package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"irrigation_backend/internal/auth"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/models"
	"irrigation_backend/internal/repositories"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateToken(token string) (*auth.Claims, error)
	// EnsureAdmin создает администратора, если его еще нет. true - создан.
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error)
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokens    *auth.TokenManager
}

// dummyHash сравнивается, когда email не найден, чтобы время ответа не выдавало существование учетки
var dummyHash, _ = auth.HashPassword("irrigation-dummy-password")

func NewAuthService(adminRepo repositories.AdminRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	admin, err := s.adminRepo.FindAdminByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			auth.CheckPasswordHash(req.Password, dummyHash)
			logger.CtxWarn(ctx, "Login failed: unknown email", "email", email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		logger.CtxWarn(ctx, "Login failed: wrong password", "admin_id", admin.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin logged in", "admin_id", admin.ID)
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}
	return claims, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if err := auth.ValidatePassword(password); err != nil {
		return false, fmt.Errorf("admin password: %w", err)
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := s.adminRepo.FindAdminByEmail(tx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrAdminNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := s.adminRepo.CreateAdmin(tx, &models.AdminUser{Email: email, PasswordHash: hash}); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		created = true
		return nil
	})
	return created, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
