package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/profile"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

// Gate decides whether a caller holds sufficient privilege for
// account-lifecycle operations. Authorization precedes all mutation:
// every lifecycle entry point runs the gate before touching either
// store. The gate itself has no side effects.
type Gate struct {
	profiles profile.Store
}

// NewGate constructs the gate over the profile store.
func NewGate(profiles profile.Store) *Gate {
	return &Gate{profiles: profiles}
}

// Authorize returns nil when the caller is an active super_admin.
func (g *Gate) Authorize(ctx context.Context, caller domain.Caller) error {
	if !caller.Authenticated || caller.SubjectID == "" {
		return apperrors.NewUnauthenticated("authentication required")
	}

	adminProfile, err := g.profiles.GetAdminProfile(ctx, caller.SubjectID)
	if errors.Is(err, profile.ErrNotFound) {
		return apperrors.NewInsufficientPrivilege("caller is not an administrator")
	}
	if err != nil {
		return apperrors.NewUpstreamFailure("profile store", err)
	}
	if !adminProfile.IsSuperAdmin() {
		return apperrors.NewInsufficientPrivilege("super_admin privilege required")
	}
	return nil
}
