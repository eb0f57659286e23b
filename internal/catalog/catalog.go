// Package catalog maps permission and role keys to localized display
// labels. The mapping is static and safe for unsynchronized concurrent
// reads.
package catalog

// Supported locales. Arabic is the default rendering locale.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

type labelSet struct {
	ar string
	en string
}

var permissionLabels = map[string]labelSet{
	"manage_users":           {ar: "إدارة المستخدمين", en: "Manage Users"},
	"view_financial_reports": {ar: "عرض التقارير المالية", en: "View Financial Reports"},
	"manage_donations":       {ar: "إدارة التبرعات", en: "Manage Donations"},
	"manage_campaigns":       {ar: "إدارة الحملات", en: "Manage Campaigns"},
	"manage_content":         {ar: "إدارة المحتوى", en: "Manage Content"},
	"manage_gallery":         {ar: "إدارة معرض الصور", en: "Manage Gallery"},
	"manage_documents":       {ar: "إدارة المستندات", en: "Manage Documents"},
	"manage_settings":        {ar: "إدارة الإعدادات", en: "Manage Settings"},
	"send_notifications":     {ar: "إرسال الإشعارات", en: "Send Notifications"},
	"view_analytics":         {ar: "عرض التحليلات", en: "View Analytics"},
}

var roleLabels = map[string]labelSet{
	"super_admin": {ar: "مدير عام", en: "Super Administrator"},
	"admin":       {ar: "مدير", en: "Administrator"},
	"editor":      {ar: "محرر", en: "Editor"},
	"member":      {ar: "عضو", en: "Member"},
	"volunteer":   {ar: "متطوع", en: "Volunteer"},
	"donor":       {ar: "متبرع", en: "Donor"},
}

// Label returns the localized display label for a permission or role
// key. Unknown keys come back unchanged so that keys introduced later
// degrade gracefully in rendered notifications instead of breaking them.
func Label(key, locale string) string {
	if set, ok := permissionLabels[key]; ok {
		return set.pick(locale)
	}
	if set, ok := roleLabels[key]; ok {
		return set.pick(locale)
	}
	return key
}

// Known reports whether the key is defined in the catalog.
func Known(key string) bool {
	_, perm := permissionLabels[key]
	_, role := roleLabels[key]
	return perm || role
}

func (s labelSet) pick(locale string) string {
	if locale == LocaleEnglish {
		return s.en
	}
	return s.ar
}
