package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

// AdminUsersHandler exposes the administrative account-lifecycle
// endpoints. It validates caller presence and input shape, then
// delegates to the coordinator; privilege checks happen there.
type AdminUsersHandler struct {
	users *service.UserService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(users *service.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// Create handles POST /admin/users.
func (h *AdminUsersHandler) Create(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UserCreateInput{
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Permissions:    req.Permissions,
		Phone:          req.Phone,
		PhotoURL:       req.PhotoURL,
		HomeCountry:    req.HomeCountry,
		CurrentCountry: req.CurrentCountry,
		Locale:         req.Locale,
	}
	if req.AdminType != nil {
		adminType := domain.AdminType(*req.AdminType)
		input.AdminType = &adminType
	}

	result, err := h.users.Create(c.UserContext(), caller, input)
	if err != nil {
		return err
	}

	response := fiber.Map{
		"data": fiber.Map{
			"id":           result.ID,
			"email":        result.Email,
			"display_name": result.DisplayName,
		},
	}
	if result.NotificationErr != nil {
		notificationErr := apperrors.ToDomainError(result.NotificationErr)
		response["warning"] = fiber.Map{
			"code":    notificationErr.Code,
			"message": notificationErr.Message,
		}
	}
	return c.Status(http.StatusCreated).JSON(response)
}

// Get handles GET /admin/users/:id.
func (h *AdminUsersHandler) Get(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	record, err := h.users.Get(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(record)})
}

// Update handles PATCH /admin/users/:id.
func (h *AdminUsersHandler) Update(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateUpdateRequest(req); err != nil {
		return err
	}

	input := service.UserUpdateInput{
		Email:          req.Email,
		Password:       req.Password,
		DisplayName:    req.DisplayName,
		Phone:          req.Phone,
		PhotoURL:       req.PhotoURL,
		HomeCountry:    req.HomeCountry,
		CurrentCountry: req.CurrentCountry,
		Role:           req.Role,
		Permissions:    req.Permissions,
		IsActive:       req.IsActive,
	}
	if req.AdminType != nil {
		adminType := domain.AdminType(*req.AdminType)
		input.AdminType = &adminType
	}

	record, err := h.users.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(record)})
}

// Delete handles DELETE /admin/users/:id.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	if err := h.users.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true, "id": id}})
}

// ResetPassword handles POST /admin/users/:id/password.
func (h *AdminUsersHandler) ResetPassword(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new_password required", nil)
	}

	if err := h.users.ResetPassword(c.UserContext(), caller, id, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// RevokeSessions handles POST /admin/users/:id/sessions/revoke.
func (h *AdminUsersHandler) RevokeSessions(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	if err := h.users.RevokeSessions(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// SendResetLink handles POST /admin/password-reset-links.
func (h *AdminUsersHandler) SendResetLink(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.ResetLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	link, err := h.users.SendPasswordResetLink(c.UserContext(), caller, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true, "link": link}})
}

func validateUpdateRequest(req dto.UserUpdateRequest) error {
	empty := func(field *string) bool { return field != nil && *field == "" }
	switch {
	case empty(req.Email):
		return apperrors.NewValidationError("email cannot be empty", map[string]any{"field": "email"})
	case empty(req.DisplayName):
		return apperrors.NewValidationError("display_name cannot be empty", map[string]any{"field": "display_name"})
	case empty(req.Role):
		return apperrors.NewValidationError("role cannot be empty", map[string]any{"field": "role"})
	}
	return nil
}
