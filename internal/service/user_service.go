package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/identity"
	"github.com/spec-kit/user-admin-service/internal/notify"
	"github.com/spec-kit/user-admin-service/internal/profile"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

const minPasswordLength = 6

// Authorizer gates administrative actions. Implemented by auth.Gate.
type Authorizer interface {
	Authorize(ctx context.Context, caller domain.Caller) error
}

// CredentialNotifier delivers credential notifications. Implemented by
// notify.Dispatcher.
type CredentialNotifier interface {
	Dispatch(ctx context.Context, req notify.Request) (notify.Result, error)
}

// UserService coordinates account-lifecycle operations across the
// identity provider and the profile store. Writes go to the identity
// provider first; there is no cross-store transaction, so a failure of
// the second write is surfaced to the caller as a possible divergence.
type UserService struct {
	gate       Authorizer
	identity   identity.Provider
	profiles   profile.Store
	notifier   CredentialNotifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborator handles for the service.
type UserDependencies struct {
	Gate       Authorizer
	Identity   identity.Provider
	Profiles   profile.Store
	Notifier   CredentialNotifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		gate:       deps.Gate,
		identity:   deps.Identity,
		profiles:   deps.Profiles,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// UserCreateInput describes account creation payload.
type UserCreateInput struct {
	DisplayName    string
	Email          string
	Password       string
	Role           string
	AdminType      *domain.AdminType
	Permissions    []string
	Phone          string
	PhotoURL       string
	HomeCountry    string
	CurrentCountry string
	Locale         string
}

// UserUpdateInput describes a partial update; nil fields are untouched.
type UserUpdateInput struct {
	Email          *string
	Password       *string
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

// UserCreateResult reports a successful creation. NotificationErr is a
// secondary, non-fatal condition: the account exists in both stores
// whether or not the credential notification could be delivered.
type UserCreateResult struct {
	ID              string
	Email           string
	DisplayName     string
	NotificationErr error
}

// Create provisions an account: identity-provider record first, then
// the profile-store record, then a best-effort credential notification.
func (s *UserService) Create(ctx context.Context, caller domain.Caller, input UserCreateInput) (*UserCreateResult, error) {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return nil, err
	}

	missing := make([]string, 0, 4)
	if input.DisplayName == "" {
		missing = append(missing, "displayName")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if input.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("required fields missing", map[string]any{"missing": missing})
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters", map[string]any{"field": "password"})
	}

	accountID, err := s.identity.CreateAccount(ctx, identity.NewAccount{
		Email:         input.Email,
		Password:      input.Password,
		DisplayName:   input.DisplayName,
		EmailVerified: false,
	})
	if errors.Is(err, identity.ErrEmailExists) {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	}
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("identity provider", err)
	}

	record := &domain.UserAccount{
		ID:             accountID,
		Email:          input.Email,
		DisplayName:    input.DisplayName,
		Phone:          input.Phone,
		PhotoURL:       input.PhotoURL,
		HomeCountry:    input.HomeCountry,
		CurrentCountry: input.CurrentCountry,
		Role:           input.Role,
		AdminType:      input.AdminType,
		Permissions:    domain.NormalizePermissions(input.Permissions),
		IsActive:       true,
		CreatedBy:      caller.SubjectID,
	}
	if err := s.profiles.Put(ctx, record); err != nil {
		// Compensate: without a profile the credential record is an
		// orphan, so take it back out.
		if delErr := s.identity.DeleteAccount(ctx, accountID); delErr != nil {
			s.logger.Error("compensating identity delete failed; stores diverged",
				zap.String("account_id", accountID), zap.Error(delErr))
			return nil, apperrors.NewDivergenceFailure("profile store", err)
		}
		return nil, apperrors.NewUpstreamFailure("profile store", err)
	}

	result := &UserCreateResult{
		ID:          accountID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
	}

	// The plaintext password exists only here; it is handed to the
	// dispatcher and never persisted.
	result.NotificationErr = s.sendCredentialNotification(ctx, caller, input)

	s.publish(ctx, events.Event{
		Type:      events.EventUserCreated,
		SubjectID: accountID,
		ActorID:   caller.SubjectID,
		Payload: events.UserCreatedPayload{
			Email:            input.Email,
			DisplayName:      input.DisplayName,
			Role:             input.Role,
			NotificationSent: result.NotificationErr == nil,
		},
	})

	return result, nil
}

// Get reads the profile-store record. The identity provider is not
// consulted.
func (s *UserService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.UserAccount, error) {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return nil, err
	}
	record, err := s.profiles.Get(ctx, id)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("profile store", err)
	}
	return record, nil
}

// Update pushes credential-relevant fields to the identity provider as
// one combined update, then applies the full partial-field set to the
// profile store, and returns the freshly-read record.
func (s *UserService) Update(ctx context.Context, caller domain.Caller, id string, input UserUpdateInput) (*domain.UserAccount, error) {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return nil, err
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters", map[string]any{"field": "password"})
	}

	if _, err := s.profiles.Get(ctx, id); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.NewUpstreamFailure("profile store", err)
	}

	identityUpdate := identity.AccountUpdate{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		PhotoURL:    input.PhotoURL,
	}
	if !identityUpdate.Empty() {
		err := s.identity.UpdateAccount(ctx, id, identityUpdate)
		if errors.Is(err, identity.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		if err != nil {
			return nil, apperrors.NewUpstreamFailure("identity provider", err)
		}
	}

	profileUpdate := profile.Update{
		Email:          input.Email,
		DisplayName:    input.DisplayName,
		Phone:          input.Phone,
		PhotoURL:       input.PhotoURL,
		HomeCountry:    input.HomeCountry,
		CurrentCountry: input.CurrentCountry,
		Role:           input.Role,
		AdminType:      input.AdminType,
		IsActive:       input.IsActive,
	}
	if input.Permissions != nil {
		profileUpdate.Permissions = domain.NormalizePermissions(input.Permissions)
	}
	if err := s.profiles.Update(ctx, id, profileUpdate); err != nil {
		// The identity provider already committed; no safe compensation
		// exists for an applied update.
		if !identityUpdate.Empty() {
			return nil, apperrors.NewDivergenceFailure("profile store", err)
		}
		return nil, apperrors.NewUpstreamFailure("profile store", err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserUpdated,
		SubjectID: id,
		ActorID:   caller.SubjectID,
		Payload:   events.UserUpdatedPayload{Fields: updatedFieldNames(input)},
	})

	record, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("profile store", err)
	}
	return record, nil
}

// Delete removes the identity-provider record, then the profile-store
// record. There is no undelete.
func (s *UserService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return err
	}

	record, err := s.profiles.Get(ctx, id)
	if errors.Is(err, profile.ErrNotFound) {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.NewUpstreamFailure("profile store", err)
	}

	if err := s.identity.DeleteAccount(ctx, id); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return apperrors.NewUpstreamFailure("identity provider", err)
	}

	if err := s.profiles.Delete(ctx, id); err != nil && !errors.Is(err, profile.ErrNotFound) {
		// Credentials are gone but the profile record remains.
		return apperrors.NewDivergenceFailure("profile store", err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserDeleted,
		SubjectID: id,
		ActorID:   caller.SubjectID,
		Payload:   events.UserDeletedPayload{Email: record.Email},
	})
	return nil
}

// ResetPassword updates only the identity-provider password.
func (s *UserService) ResetPassword(ctx context.Context, caller domain.Caller, id, newPassword string) error {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", map[string]any{"field": "newPassword"})
	}

	err := s.identity.UpdateAccount(ctx, id, identity.AccountUpdate{Password: &newPassword})
	if errors.Is(err, identity.ErrNotFound) {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.NewUpstreamFailure("identity provider", err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventPasswordReset,
		SubjectID: id,
		ActorID:   caller.SubjectID,
	})
	return nil
}

// RevokeSessions invalidates all standing sessions for the account.
func (s *UserService) RevokeSessions(ctx context.Context, caller domain.Caller, id string) error {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return err
	}

	err := s.identity.RevokeSessions(ctx, id)
	if errors.Is(err, identity.ErrNotFound) {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.NewUpstreamFailure("identity provider", err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventSessionsRevoked,
		SubjectID: id,
		ActorID:   caller.SubjectID,
	})
	return nil
}

// SendPasswordResetLink requests a one-time reset link and returns it.
// Delivering the link is the caller's responsibility.
func (s *UserService) SendPasswordResetLink(ctx context.Context, caller domain.Caller, email string) (string, error) {
	if err := s.gate.Authorize(ctx, caller); err != nil {
		return "", err
	}
	if email == "" {
		return "", apperrors.NewValidationError("email required", nil)
	}

	link, err := s.identity.GenerateResetLink(ctx, email)
	if errors.Is(err, identity.ErrNotFound) {
		return "", apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	if err != nil {
		return "", apperrors.NewUpstreamFailure("identity provider", err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventResetLinkIssued,
		ActorID: caller.SubjectID,
		Payload: events.ResetLinkIssuedPayload{Email: email},
	})
	return link, nil
}

func (s *UserService) sendCredentialNotification(ctx context.Context, caller domain.Caller, input UserCreateInput) error {
	if s.notifier == nil {
		return nil
	}

	req := notify.Request{
		RecipientEmail: input.Email,
		RecipientName:  input.DisplayName,
		IssuedEmail:    input.Email,
		IssuedPassword: input.Password,
		Role:           input.Role,
		Permissions:    domain.NormalizePermissions(input.Permissions),
		Locale:         input.Locale,
	}
	// Sender identity is cosmetic; ignore lookup failures.
	if sender, err := s.profiles.Get(ctx, caller.SubjectID); err == nil {
		req.SenderName = sender.DisplayName
		req.SenderRole = sender.Role
	}

	if _, err := s.notifier.Dispatch(ctx, req); err != nil {
		return apperrors.NewNotificationFailure(err)
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func updatedFieldNames(input UserUpdateInput) []string {
	fields := make([]string, 0, 11)
	if input.Email != nil {
		fields = append(fields, "email")
	}
	if input.Password != nil {
		fields = append(fields, "password")
	}
	if input.DisplayName != nil {
		fields = append(fields, "displayName")
	}
	if input.Phone != nil {
		fields = append(fields, "phone")
	}
	if input.PhotoURL != nil {
		fields = append(fields, "photoURL")
	}
	if input.HomeCountry != nil {
		fields = append(fields, "homeCountry")
	}
	if input.CurrentCountry != nil {
		fields = append(fields, "currentCountry")
	}
	if input.Role != nil {
		fields = append(fields, "role")
	}
	if input.AdminType != nil {
		fields = append(fields, "adminType")
	}
	if input.Permissions != nil {
		fields = append(fields, "permissions")
	}
	if input.IsActive != nil {
		fields = append(fields, "isActive")
	}
	return fields
}
