package service

import (
	"context"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// The dashboard has a single configured admin account; admin-user CRUD
// lives in a separate system.
const adminID int64 = 1

type authService struct {
	adminEmail        string
	adminPasswordHash string
	tokens            security.TokenManager
}

func NewAuthService(adminEmail, adminPasswordHash string, tokens security.TokenManager) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		tokens:            tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	if email != s.adminEmail {
		logger.Warn("login attempt with unknown email", "email", email)
		return "", domain.NewValidationError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", domain.NewValidationError("invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(adminID, email)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", err
	}

	logger.ExitMethod("authService.Login", "email", email)
	return token, nil
}
