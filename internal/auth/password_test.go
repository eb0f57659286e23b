package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/auth"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret9", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret9", hash)

	assert.NoError(t, auth.ComparePassword(hash, "s3cret9"))
	assert.Error(t, auth.ComparePassword(hash, "wrong"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Misconfigured costs must not make hashing fail.
	for _, cost := range []int{-1, 0, 99} {
		hash, err := auth.HashPassword("s3cret9", cost)
		require.NoError(t, err, "cost %d", cost)
		assert.NoError(t, auth.ComparePassword(hash, "s3cret9"))
	}
}
