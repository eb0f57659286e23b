package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/domain"
	apperrors "github.com/spec-kit/user-admin-service/pkg/errorutil"
)

const callerKey = "auth_caller"

// SessionRevocations answers whether a subject's sessions were revoked
// after a token was issued. Implemented by identity.SessionRegistry.
type SessionRevocations interface {
	RevokedAt(ctx context.Context, accountID string) (time.Time, error)
}

// AuthMiddleware validates bearer tokens and resolves the Caller.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions SessionRevocations
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionRevocations) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}
	if claims.SubjectID == "" {
		return apperrors.NewUnauthenticated("token carries no subject")
	}

	if m.sessions != nil && claims.IssuedAt != nil {
		revokedAt, err := m.sessions.RevokedAt(c.UserContext(), claims.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !revokedAt.IsZero() && !claims.IssuedAt.Time.After(revokedAt) {
			return apperrors.NewUnauthenticated("session revoked")
		}
	}

	c.Locals(callerKey, domain.Caller{SubjectID: claims.SubjectID, Authenticated: true})
	return c.Next()
}

// CallerFromContext retrieves the authenticated caller.
func CallerFromContext(c *fiber.Ctx) (domain.Caller, bool) {
	val := c.Locals(callerKey)
	if val == nil {
		return domain.Caller{}, false
	}
	caller, ok := val.(domain.Caller)
	return caller, ok
}
