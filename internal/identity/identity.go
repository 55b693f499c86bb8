// Package identity holds the per-request caller context produced by
// authentication. The rest of the system treats it as an immutable value.
package identity

import "github.com/bwmarrin/snowflake"

// Role is the platform-wide role of a user. Roles form a strict hierarchy:
// super_admin may do everything admin may, admin everything analyst may.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleAnalyst    Role = "analyst"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleAnalyst:
		return true
	default:
		return false
	}
}

// Identity describes an authenticated caller. OrganizationID is always set,
// even for super_admin, but super_admin is never constrained by it.
type Identity struct {
	UserID         snowflake.ID
	Role           Role
	OrganizationID snowflake.ID
}
