package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-admin-service/internal/catalog"
)

func TestLabelKnownKeys(t *testing.T) {
	tests := []struct {
		key    string
		locale string
		want   string
	}{
		{"manage_users", catalog.LocaleArabic, "إدارة المستخدمين"},
		{"manage_users", catalog.LocaleEnglish, "Manage Users"},
		{"view_financial_reports", catalog.LocaleArabic, "عرض التقارير المالية"},
		{"send_notifications", catalog.LocaleEnglish, "Send Notifications"},
		{"super_admin", catalog.LocaleArabic, "مدير عام"},
		{"member", catalog.LocaleEnglish, "Member"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"/"+tc.locale, func(t *testing.T) {
			assert.Equal(t, tc.want, catalog.Label(tc.key, tc.locale))
		})
	}
}

func TestLabelDefaultsToArabic(t *testing.T) {
	assert.Equal(t, "إدارة المستخدمين", catalog.Label("manage_users", ""))
	assert.Equal(t, "إدارة المستخدمين", catalog.Label("manage_users", "fr"))
}

func TestLabelUnknownKeyPassesThrough(t *testing.T) {
	// Keys added to the catalog later must degrade gracefully, not error.
	for _, key := range []string{"manage_volunteers", "", "some.future.key", "مفتاح"} {
		assert.Equal(t, key, catalog.Label(key, catalog.LocaleArabic))
		assert.Equal(t, key, catalog.Label(key, catalog.LocaleEnglish))
	}
}

func TestLabelIsTotal(t *testing.T) {
	// Every input maps to some non-empty label except the empty key,
	// which maps to itself.
	assert.Equal(t, "", catalog.Label("", catalog.LocaleArabic))
	assert.NotEmpty(t, catalog.Label("manage_users", "xx"))
}

func TestKnown(t *testing.T) {
	assert.True(t, catalog.Known("manage_users"))
	assert.True(t, catalog.Known("super_admin"))
	assert.False(t, catalog.Known("manage_volunteers"))
}
