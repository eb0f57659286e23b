package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

// AuthHandler exposes the admin login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	adminProfile, token, expiresAt, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": fiber.Map{
				"id":         adminProfile.SubjectID,
				"admin_type": adminProfile.AdminType,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
