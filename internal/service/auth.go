package service

import (
	"context"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	adminRepo repository.AdminRepository
	tokens    security.TokenManager
}

func NewAuthService(adminRepo repository.AdminRepository, tokens security.TokenManager) AuthService {
	return &authService{adminRepo: adminRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !security.CheckPassword(password, admin.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
