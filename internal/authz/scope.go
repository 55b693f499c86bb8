// Package authz centralizes the platform's authorization rules: a casbin
// capability matrix deciding which role may perform which action, and the
// tenant scope that constrains every query a non-super caller issues.
//
// Cross-tenant access and genuinely missing resources are deliberately
// indistinguishable: both surface as the domain's not-found error, so a
// caller can never enumerate tenants through differential responses.
package authz

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

// Scope bounds the organizations a caller may touch. The zero organization id
// means unrestricted.
type Scope struct {
	orgID snowflake.ID
}

// Unrestricted returns the scope of a caller exempt from tenant isolation.
func Unrestricted() Scope { return Scope{} }

// RestrictedTo returns a scope confined to one organization.
func RestrictedTo(orgID snowflake.ID) Scope { return Scope{orgID: orgID} }

// ScopeFor derives the tenant scope from the caller's role. Only super_admin
// escapes tenant isolation.
func ScopeFor(actor identity.Identity) Scope {
	if actor.Role == identity.RoleSuperAdmin {
		return Unrestricted()
	}
	return RestrictedTo(actor.OrganizationID)
}

// Restricted reports whether the scope is confined to a single organization.
func (s Scope) Restricted() bool { return s.orgID != 0 }

// OrgID returns the confining organization, or zero when unrestricted.
func (s Scope) OrgID() snowflake.ID { return s.orgID }

// PermitsOrg reports whether resources of the given organization are visible
// within this scope.
func (s Scope) PermitsOrg(orgID snowflake.ID) bool {
	return !s.Restricted() || s.orgID == orgID
}
