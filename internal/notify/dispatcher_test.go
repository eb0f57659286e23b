package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/notify"
)

type captureTransport struct {
	calls   int
	from    string
	to      string
	subject string
	html    string
	text    string
	err     error
}

func (t *captureTransport) Send(_ context.Context, from, to, subject, html, text string) (string, error) {
	t.calls++
	t.from, t.to, t.subject, t.html, t.text = from, to, subject, html, text
	if t.err != nil {
		return "", t.err
	}
	return "msg-1", nil
}

func testConfig() config.NotificationConfig {
	return config.NotificationConfig{
		EmailFrom:     "noreply@example.com",
		AppName:       "Test App",
		AppURL:        "https://app.example.com",
		DefaultLocale: "ar",
	}
}

func testRequest() notify.Request {
	return notify.Request{
		RecipientEmail: "new@example.com",
		RecipientName:  "Nadia",
		IssuedEmail:    "new@example.com",
		IssuedPassword: "s3cret9",
		Role:           "member",
		Permissions:    []string{"manage_users", "view_financial_reports"},
		SenderName:     "Omar",
		SenderRole:     "super_admin",
	}
}

func TestDispatchSendsOneMessage(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	result, err := dispatcher.Dispatch(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "msg-1", result.MessageID)
	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, "noreply@example.com", transport.from)
	assert.Equal(t, "new@example.com", transport.to)
	assert.NotEmpty(t, transport.subject)
	assert.NotEmpty(t, transport.html)
	assert.NotEmpty(t, transport.text)
}

func TestDispatchRenderingIsIdempotent(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	_, err := dispatcher.Dispatch(context.Background(), testRequest())
	require.NoError(t, err)
	firstHTML, firstText, firstSubject := transport.html, transport.text, transport.subject

	_, err = dispatcher.Dispatch(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, firstSubject, transport.subject)
	assert.Equal(t, firstHTML, transport.html)
	assert.Equal(t, firstText, transport.text)
}

func TestDispatchLocalizesRoleAndPermissions(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	_, err := dispatcher.Dispatch(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Contains(t, transport.html, "إدارة المستخدمين")
	assert.Contains(t, transport.html, "عرض التقارير المالية")
	assert.Contains(t, transport.html, "عضو")
	assert.Contains(t, transport.text, "إدارة المستخدمين")
	assert.Contains(t, transport.text, "s3cret9")
}

func TestDispatchUnknownPermissionPassesThrough(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	req := testRequest()
	req.Permissions = []string{"manage_users", "manage_volunteers"}

	_, err := dispatcher.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, transport.html, "manage_volunteers")
	assert.Contains(t, transport.text, "manage_volunteers")
}

func TestDispatchEnglishLocale(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	req := testRequest()
	req.Locale = "en"

	_, err := dispatcher.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, transport.subject, "Your new account credentials")
	assert.Contains(t, transport.html, "Manage Users")
	assert.Contains(t, transport.html, `dir="ltr"`)
	assert.Contains(t, transport.text, "Member")
}

func TestDispatchBrandingOverrides(t *testing.T) {
	transport := &captureTransport{}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	req := testRequest()
	req.Branding = &notify.Branding{AppName: "Custom Brand", AccentColor: "#123456"}

	_, err := dispatcher.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, transport.subject, "Custom Brand")
	assert.Contains(t, transport.html, "#123456")
}

func TestDispatchTransportFailure(t *testing.T) {
	transport := &captureTransport{err: errors.New("smtp unreachable")}
	dispatcher := notify.NewDispatcher(transport, zap.NewNop(), testConfig())

	_, err := dispatcher.Dispatch(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, 1, transport.calls)
}
