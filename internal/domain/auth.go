package domain

// Caller is the invoking identity as presented on a request. SubjectID
// is the identity-provider account id; Authenticated records whether a
// verified proof accompanied the request.
type Caller struct {
	SubjectID     string
	Authenticated bool
}

// AdminProfile is the profile-store projection the Authorization Gate
// consults: the privilege level and activity flag for a subject.
type AdminProfile struct {
	SubjectID string
	AdminType AdminType
	IsActive  bool
}

// IsSuperAdmin reports whether the profile grants lifecycle privileges.
func (p *AdminProfile) IsSuperAdmin() bool {
	return p != nil && p.IsActive && p.AdminType == AdminTypeSuper
}
