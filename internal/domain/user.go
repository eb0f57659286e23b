package domain

import "time"

// AdminType grades administrative privilege. A nil AdminType on a
// UserAccount means the account is not an administrator at all.
type AdminType string

const (
	AdminTypeSuper    AdminType = "super_admin"
	AdminTypeStandard AdminType = "admin"
)

// UserAccount is the managed entity, merged across the identity
// provider (credentials) and the profile store (everything else).
type UserAccount struct {
	ID             string
	Email          string
	DisplayName    string
	Phone          string
	PhotoURL       string
	HomeCountry    string
	CurrentCountry string
	Role           string
	AdminType      *AdminType
	Permissions    []string
	IsActive       bool
	CreatedAt      time.Time
	CreatedBy      string
}

// NormalizePermissions collapses duplicates while keeping first-seen
// order. The result is never nil: an empty set must stay an empty
// array rather than degrade to NULL in the profile store, and a nil
// result would also make an explicit "clear all permissions" update
// indistinguishable from an absent field.
func NormalizePermissions(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
