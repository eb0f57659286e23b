package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-admin-service/internal/api/http"
	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/identity"
	"github.com/spec-kit/user-admin-service/internal/notify"
	"github.com/spec-kit/user-admin-service/internal/profile"
	"github.com/spec-kit/user-admin-service/internal/service"
)

type memIdentity struct {
	accounts map[string]identity.NewAccount
	emails   map[string]string
	nextID   int
}

func newMemIdentity() *memIdentity {
	return &memIdentity{accounts: map[string]identity.NewAccount{}, emails: map[string]string{}}
}

func (m *memIdentity) CreateAccount(_ context.Context, account identity.NewAccount) (string, error) {
	if _, exists := m.emails[account.Email]; exists {
		return "", identity.ErrEmailExists
	}
	m.nextID++
	id := fmt.Sprintf("acct-%d", m.nextID)
	m.accounts[id] = account
	m.emails[account.Email] = id
	return id, nil
}

func (m *memIdentity) UpdateAccount(_ context.Context, id string, _ identity.AccountUpdate) error {
	if _, ok := m.accounts[id]; !ok {
		return identity.ErrNotFound
	}
	return nil
}

func (m *memIdentity) DeleteAccount(_ context.Context, id string) error {
	account, ok := m.accounts[id]
	if !ok {
		return identity.ErrNotFound
	}
	delete(m.emails, account.Email)
	delete(m.accounts, id)
	return nil
}

func (m *memIdentity) RevokeSessions(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return identity.ErrNotFound
	}
	return nil
}

func (m *memIdentity) GenerateResetLink(_ context.Context, email string) (string, error) {
	if _, ok := m.emails[email]; !ok {
		return "", identity.ErrNotFound
	}
	return "https://example.com/reset?token=tok-1", nil
}

func (m *memIdentity) VerifyPassword(_ context.Context, email, password string) (string, error) {
	id, ok := m.emails[email]
	if !ok || m.accounts[id].Password != password {
		return "", identity.ErrNotFound
	}
	return id, nil
}

type memProfiles struct {
	records map[string]*domain.UserAccount
	admins  map[string]*domain.AdminProfile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{records: map[string]*domain.UserAccount{}, admins: map[string]*domain.AdminProfile{}}
}

func (m *memProfiles) Put(_ context.Context, record *domain.UserAccount) error {
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *memProfiles) Get(_ context.Context, id string) (*domain.UserAccount, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, profile.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (m *memProfiles) Update(_ context.Context, id string, update profile.Update) error {
	record, ok := m.records[id]
	if !ok {
		return profile.ErrNotFound
	}
	if update.Role != nil {
		record.Role = *update.Role
	}
	if update.DisplayName != nil {
		record.DisplayName = *update.DisplayName
	}
	if update.Email != nil {
		record.Email = *update.Email
	}
	return nil
}

func (m *memProfiles) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return profile.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memProfiles) GetAdminProfile(_ context.Context, subjectID string) (*domain.AdminProfile, error) {
	adminProfile, ok := m.admins[subjectID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return adminProfile, nil
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(_ context.Context, _ notify.Request) (notify.Result, error) {
	return notify.Result{MessageID: "msg-1"}, nil
}

type testApp struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	profiles *memProfiles
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60

	identityFake := newMemIdentity()
	profilesFake := newMemProfiles()
	profilesFake.admins["admin-1"] = &domain.AdminProfile{
		SubjectID: "admin-1", AdminType: domain.AdminTypeSuper, IsActive: true,
	}
	profilesFake.admins["admin-2"] = &domain.AdminProfile{
		SubjectID: "admin-2", AdminType: domain.AdminTypeStandard, IsActive: true,
	}

	userService := service.NewUserService(service.UserDependencies{
		Gate:       auth.NewGate(profilesFake),
		Identity:   identityFake,
		Profiles:   profilesFake,
		Notifier:   nopNotifier{},
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		Identity: identityFake,
		Profiles: profilesFake,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		AdminUsers:     handlers.NewAdminUsersHandler(userService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), nil),
	})

	return &testApp{app: app, tokens: authService.TokenManager(), profiles: profilesFake}
}

func (ta *testApp) tokenFor(t *testing.T, subjectID string) string {
	t.Helper()
	token, _, err := ta.tokens.GenerateToken(subjectID)
	require.NoError(t, err)
	return token
}

func (ta *testApp) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

const validCreateBody = `{"display_name":"Test","email":"t@x.com","password":"abcdef","role":"member"}`

func TestGatewayRejectsMissingToken(t *testing.T) {
	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodPost, "/admin/users", "", validCreateBody)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(body))
}

func TestGatewayRejectsNonSuperAdmin(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-2")

	status, body := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "INSUFFICIENT_PRIVILEGE", errorCode(body))
}

func TestGatewayCreateValidation(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	status, body := ta.do(t, http.MethodPost, "/admin/users", token,
		`{"display_name":"Test","email":"t@x.com","password":"abcde","role":"member"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestGatewayCreateThenGetThenDelete(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	status, body := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	data := body["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "t@x.com", data["email"])
	assert.Equal(t, "Test", data["display_name"])

	status, body = ta.do(t, http.MethodGet, "/admin/users/"+id, token, "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "member", data["role"])
	assert.Equal(t, true, data["is_active"])

	status, body = ta.do(t, http.MethodDelete, "/admin/users/"+id, token, "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, id, data["id"])

	status, body = ta.do(t, http.MethodGet, "/admin/users/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestGatewayDuplicateEmailConflict(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	status, _ := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	require.Equal(t, http.StatusCreated, status)

	status, body := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))
}

func TestGatewayResetPasswordValidation(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	status, body := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)

	status, body = ta.do(t, http.MethodPost, "/admin/users/"+id+"/password", token, `{"new_password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = ta.do(t, http.MethodPost, "/admin/users/"+id+"/password", token, `{"new_password":"123456"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["success"])
}

func TestGatewaySendResetLink(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	status, _ := ta.do(t, http.MethodPost, "/admin/users", token, validCreateBody)
	require.Equal(t, http.StatusCreated, status)

	status, body := ta.do(t, http.MethodPost, "/admin/password-reset-links", token, `{"email":"t@x.com"}`)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Contains(t, data["link"], "token=")

	status, body = ta.do(t, http.MethodPost, "/admin/password-reset-links", token, `{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestGatewayAdminLogin(t *testing.T) {
	ta := newTestApp(t)
	token := ta.tokenFor(t, "admin-1")

	// Provision an account, then promote it so it can log in.
	status, body := ta.do(t, http.MethodPost, "/admin/users", token,
		`{"display_name":"Root","email":"root@x.com","password":"abcdef","role":"admin","admin_type":"super_admin"}`)
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)
	ta.profiles.admins[id] = &domain.AdminProfile{
		SubjectID: id, AdminType: domain.AdminTypeSuper, IsActive: true,
	}

	status, body = ta.do(t, http.MethodPost, "/auth/login", "", `{"email":"root@x.com","password":"abcdef"}`)
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	authData := body["data"].(map[string]any)["auth"].(map[string]any)
	assert.NotEmpty(t, authData["token"])

	status, body = ta.do(t, http.MethodPost, "/auth/login", "", `{"email":"root@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(body))
}
