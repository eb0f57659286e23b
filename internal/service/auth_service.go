package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/identity"
	"github.com/spec-kit/user-admin-service/internal/profile"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

// AuthService issues bearer tokens for administrators. Only active
// super_admin profiles may log in; everyone else is turned away before
// a token is minted.
type AuthService struct {
	identity identity.Provider
	profiles profile.Store
	tokenMgr *auth.TokenManager
}

// AuthDependencies encapsulates collaborator requirements.
type AuthDependencies struct {
	Identity identity.Provider
	Profiles profile.Store
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		identity: deps.Identity,
		profiles: deps.Profiles,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// LoginAdmin verifies credentials and returns a signed token for an
// active super_admin.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.AdminProfile, string, time.Time, error) {
	subjectID, err := s.identity.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	adminProfile, err := s.profiles.GetAdminProfile(ctx, subjectID)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, "", time.Time{}, apperrors.NewInsufficientPrivilege("caller is not an administrator")
	}
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUpstreamFailure("profile store", err)
	}
	if !adminProfile.IsSuperAdmin() {
		return nil, "", time.Time{}, apperrors.NewInsufficientPrivilege("super_admin privilege required")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(subjectID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return adminProfile, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
