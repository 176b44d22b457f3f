package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/tourism-service/internal/auth"
	"github.com/spec-kit/tourism-service/internal/config"
	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/repository"
	apperrors "github.com/spec-kit/tourism-service/pkg/util"
)

// AuthService issues identity tokens and answers role probes.
type AuthService struct {
	tokens *auth.TokenManager
	users  repository.UserRepository
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		users:  users,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// IssueToken signs a token for the presented identity claim. The claim is
// not checked against the user store; authorization resolves the real role
// on every protected request.
func (s *AuthService) IssueToken(email string, role domain.Role) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, apperrors.NewValidationError("email required")
	}
	return s.tokens.Issue(email, role)
}

// HasRole reports whether the stored role for email equals role. A missing
// user record is simply false.
func (s *AuthService) HasRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	resolved, err := s.users.ResolveRole(ctx, email)
	if err != nil {
		return false, storageErr(err)
	}
	return resolved == role, nil
}

func storageErr(err error) error {
	if errors.Is(err, repository.ErrInvalidID) {
		return apperrors.NewValidationError("invalid id")
	}
	return apperrors.NewStorageUnavailable(err)
}
