package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

func TestNormalizePermissionsCollapsesDuplicates(t *testing.T) {
	got := domain.NormalizePermissions([]string{"manage_users", "view_analytics", "manage_users"})
	assert.Equal(t, []string{"manage_users", "view_analytics"}, got)
}

func TestNormalizePermissionsDropsEmptyKeys(t *testing.T) {
	got := domain.NormalizePermissions([]string{"", "manage_users", ""})
	assert.Equal(t, []string{"manage_users"}, got)
}

func TestNormalizePermissionsNeverReturnsNil(t *testing.T) {
	// A nil slice would reach the profile store as SQL NULL and would
	// make clearing the set indistinguishable from omitting the field.
	for name, input := range map[string][]string{
		"nil input":       nil,
		"empty input":     {},
		"only empty keys": {"", ""},
	} {
		t.Run(name, func(t *testing.T) {
			got := domain.NormalizePermissions(input)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}
