package scopebus

import (
	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/types/profile"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// RoleAssignment links a user to a role within a company and optionally a
// branch. A user may hold several simultaneous active assignments. Rows are
// deactivated, never removed, so the assignment history stays auditable.
type RoleAssignment struct {
	UserID    uuid.UUID
	CompanyID *int64
	BranchID  *int64
	Role      rolebus.Role
	Active    bool
}

// NewAssignment contains the information needed to grant a role to a user.
type NewAssignment struct {
	UserID    uuid.UUID
	RoleID    int
	CompanyID *int64
	BranchID  *int64
}

// Hints carries the client supplied scope preferences. The caller extracts
// them from its transport (headers or cookies); absent or malformed values
// arrive here as nil.
type Hints struct {
	BranchID  *int64
	CompanyID *int64
}

// TenantScope is the resolved authorization context a request executes under.
// It is computed per request and never stored. CompanyID may be nil only for
// a platform level role; the tenant filter treats any other nil company as a
// security violation.
type TenantScope struct {
	UserID    uuid.UUID
	RoleLevel rolelevel.Level
	RoleName  string
	RoleType  string
	CompanyID *int64
	BranchID  *int64
	Scoped    bool
	Profile   *profile.Profile
}

// IsPlatform reports whether the scope belongs to a platform admin.
func (s TenantScope) IsPlatform() bool {
	return s.RoleLevel.IsPlatform()
}

// IsUnscopedPlatform reports whether the scope is a platform admin who has
// not narrowed to a single company. Such a scope bypasses tenant filtering.
func (s TenantScope) IsUnscopedPlatform() bool {
	return s.IsPlatform() && !s.Scoped
}

// Company returns the company id the scope is narrowed to. ok is false for an
// unscoped platform admin.
func (s TenantScope) Company() (int64, bool) {
	if s.CompanyID == nil {
		return 0, false
	}

	return *s.CompanyID, true
}

// Branch returns the branch id the scope is narrowed to, if any.
func (s TenantScope) Branch() (int64, bool) {
	if s.BranchID == nil {
		return 0, false
	}

	return *s.BranchID, true
}

// Equal provides support for the go-cmp package and testing.
func (s TenantScope) Equal(s2 TenantScope) bool {
	if s.UserID != s2.UserID ||
		!s.RoleLevel.Equal(s2.RoleLevel) ||
		s.RoleName != s2.RoleName ||
		s.RoleType != s2.RoleType ||
		s.Scoped != s2.Scoped {
		return false
	}

	if !equalInt64Ptr(s.CompanyID, s2.CompanyID) || !equalInt64Ptr(s.BranchID, s2.BranchID) {
		return false
	}

	switch {
	case s.Profile == nil && s2.Profile == nil:
		return true
	case s.Profile == nil || s2.Profile == nil:
		return false
	}

	return s.Profile.Equal(*s2.Profile)
}

func equalInt64Ptr(a *int64, b *int64) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	}

	return *a == *b
}
