package dto

import (
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// UserCreateRequest payload for provisioning an account.
type UserCreateRequest struct {
	DisplayName    string   `json:"display_name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	AdminType      *string  `json:"admin_type,omitempty"`
	Permissions    []string `json:"permissions,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	PhotoURL       string   `json:"photo_url,omitempty"`
	HomeCountry    string   `json:"home_country,omitempty"`
	CurrentCountry string   `json:"current_country,omitempty"`
	Locale         string   `json:"locale,omitempty"`
}

// UserUpdateRequest payload for partial updates; absent fields are untouched.
type UserUpdateRequest struct {
	Email          *string  `json:"email,omitempty"`
	Password       *string  `json:"password,omitempty"`
	DisplayName    *string  `json:"display_name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	PhotoURL       *string  `json:"photo_url,omitempty"`
	HomeCountry    *string  `json:"home_country,omitempty"`
	CurrentCountry *string  `json:"current_country,omitempty"`
	Role           *string  `json:"role,omitempty"`
	AdminType      *string  `json:"admin_type,omitempty"`
	Permissions    []string `json:"permissions,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

// ResetPasswordRequest payload for administrative password resets.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResetLinkRequest payload for one-time reset links.
type ResetLinkRequest struct {
	Email string `json:"email"`
}

// UserResponse is the full profile projection returned to callers.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Phone          string    `json:"phone,omitempty"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	HomeCountry    string    `json:"home_country,omitempty"`
	CurrentCountry string    `json:"current_country,omitempty"`
	Role           string    `json:"role"`
	AdminType      *string   `json:"admin_type,omitempty"`
	Permissions    []string  `json:"permissions"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// NewUserResponse maps the domain record to its response shape.
func NewUserResponse(record *domain.UserAccount) UserResponse {
	resp := UserResponse{
		ID:             record.ID,
		Email:          record.Email,
		DisplayName:    record.DisplayName,
		Phone:          record.Phone,
		PhotoURL:       record.PhotoURL,
		HomeCountry:    record.HomeCountry,
		CurrentCountry: record.CurrentCountry,
		Role:           record.Role,
		Permissions:    record.Permissions,
		IsActive:       record.IsActive,
		CreatedAt:      record.CreatedAt,
		CreatedBy:      record.CreatedBy,
	}
	if record.Permissions == nil {
		resp.Permissions = []string{}
	}
	if record.AdminType != nil {
		adminType := string(*record.AdminType)
		resp.AdminType = &adminType
	}
	return resp
}
