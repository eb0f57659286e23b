package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AdminUsers     *handlers.AdminUsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Post("/users", cfg.AdminUsers.Create)
	admin.Get("/users/:id", cfg.AdminUsers.Get)
	admin.Patch("/users/:id", cfg.AdminUsers.Update)
	admin.Delete("/users/:id", cfg.AdminUsers.Delete)
	admin.Post("/users/:id/password", cfg.AdminUsers.ResetPassword)
	admin.Post("/users/:id/sessions/revoke", cfg.AdminUsers.RevokeSessions)
	admin.Post("/password-reset-links", cfg.AdminUsers.SendResetLink)
}
