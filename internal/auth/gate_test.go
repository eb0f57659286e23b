package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/profile"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

type stubProfileStore struct {
	profile.Store
	admins map[string]*domain.AdminProfile
	err    error
}

func (s *stubProfileStore) GetAdminProfile(_ context.Context, subjectID string) (*domain.AdminProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	adminProfile, ok := s.admins[subjectID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return adminProfile, nil
}

func TestGateAuthorize(t *testing.T) {
	store := &stubProfileStore{admins: map[string]*domain.AdminProfile{
		"super-1":    {SubjectID: "super-1", AdminType: domain.AdminTypeSuper, IsActive: true},
		"standard-1": {SubjectID: "standard-1", AdminType: domain.AdminTypeStandard, IsActive: true},
		"inactive-1": {SubjectID: "inactive-1", AdminType: domain.AdminTypeSuper, IsActive: false},
	}}
	gate := auth.NewGate(store)
	ctx := context.Background()

	tests := []struct {
		name     string
		caller   domain.Caller
		wantCode string
	}{
		{"active super admin", domain.Caller{SubjectID: "super-1", Authenticated: true}, ""},
		{"no proof", domain.Caller{SubjectID: "super-1"}, apperrors.CodeUnauthenticated},
		{"empty subject", domain.Caller{Authenticated: true}, apperrors.CodeUnauthenticated},
		{"unknown subject", domain.Caller{SubjectID: "nobody", Authenticated: true}, apperrors.CodeInsufficientPrivilege},
		{"standard admin", domain.Caller{SubjectID: "standard-1", Authenticated: true}, apperrors.CodeInsufficientPrivilege},
		{"inactive super admin", domain.Caller{SubjectID: "inactive-1", Authenticated: true}, apperrors.CodeInsufficientPrivilege},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Authorize(ctx, tc.caller)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestGateStoreFailure(t *testing.T) {
	gate := auth.NewGate(&stubProfileStore{err: errors.New("store down")})

	err := gate.Authorize(context.Background(), domain.Caller{SubjectID: "super-1", Authenticated: true})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamFailure), "got %v", err)
}
