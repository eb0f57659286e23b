package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 60)

	token, expiresAt, err := manager.GenerateToken("subject-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.SubjectID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := auth.NewTokenManager("secret-a", 60).GenerateToken("subject-1")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := auth.NewTokenManager("secret", 60).ParseToken("not.a.token")
	assert.Error(t, err)
}
