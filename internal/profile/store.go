// Package profile defines the narrow interface to the store that owns
// role, permission and organizational metadata, plus its Postgres
// implementation.
package profile

import (
	"context"
	"errors"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// ErrNotFound is returned when no record exists for the id.
var ErrNotFound = errors.New("profile not found")

// Update is a partial update; nil fields are left untouched.
// Permissions replaces the whole set when non-nil.
type Update struct {
	Email          *string
	DisplayName    *string
	Phone          *string
	PhotoURL       *string
	HomeCountry    *string
	CurrentCountry *string
	Role           *string
	AdminType      *domain.AdminType
	Permissions    []string
	IsActive       *bool
}

// Store is the profile-store contract the coordinator and the
// authorization gate depend on.
type Store interface {
	Put(ctx context.Context, record *domain.UserAccount) error
	Get(ctx context.Context, id string) (*domain.UserAccount, error)
	Update(ctx context.Context, id string, update Update) error
	Delete(ctx context.Context, id string) error
	GetAdminProfile(ctx context.Context, subjectID string) (*domain.AdminProfile, error)
}
