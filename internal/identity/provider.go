// Package identity defines the narrow interface to the system of
// record for credentials, email-verification state and sessions, plus
// a Postgres-backed implementation of it.
package identity

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by Provider implementations.
var (
	ErrEmailExists = errors.New("email already registered")
	ErrNotFound    = errors.New("account not found")
)

// NewAccount carries the fields required to create a credential record.
type NewAccount struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

// AccountUpdate is a partial update; nil fields are left untouched.
type AccountUpdate struct {
	Email       *string
	Password    *string
	DisplayName *string
	Phone       *string
	PhotoURL    *string
}

// Empty reports whether the update would change nothing.
func (u AccountUpdate) Empty() bool {
	return u.Email == nil && u.Password == nil && u.DisplayName == nil &&
		u.Phone == nil && u.PhotoURL == nil
}

// Provider is the identity-provider contract the coordinator depends
// on. Implementations own password hashes and session validity; the
// rest of the system never sees either.
type Provider interface {
	CreateAccount(ctx context.Context, account NewAccount) (string, error)
	UpdateAccount(ctx context.Context, id string, update AccountUpdate) error
	DeleteAccount(ctx context.Context, id string) error
	RevokeSessions(ctx context.Context, id string) error
	GenerateResetLink(ctx context.Context, email string) (string, error)
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}
