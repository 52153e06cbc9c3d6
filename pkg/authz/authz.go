package authz

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
)

// Capability names an operation gated by role-based access control.
type Capability string

const (
	CapRegisterUser Capability = "register-user"
	CapStoreSecret  Capability = "store-secret"
	CapListSecrets  Capability = "list-secrets"
	CapReadSecret   Capability = "read-secret"
	CapRotateSecret Capability = "rotate-secret"
	CapListAudit    Capability = "list-audit"
)

// capabilityRoles is the declarative capability set: for each
// operation, the roles allowed to invoke it. Ownership scoping is
// applied on top of this by the scope helpers below.
var capabilityRoles = map[Capability][]model.Role{
	CapRegisterUser: {model.RoleAdmin},
	CapStoreSecret:  {model.RoleAdmin, model.RoleOperator, model.RoleUser},
	CapListSecrets:  {model.RoleAdmin, model.RoleOperator, model.RoleAuditor, model.RoleUser},
	CapReadSecret:   {model.RoleAdmin, model.RoleOperator, model.RoleAuditor, model.RoleUser},
	CapRotateSecret: {model.RoleAdmin, model.RoleOperator},
	CapListAudit:    {model.RoleAdmin, model.RoleAuditor},
}

// Require checks the caller's role against the capability's allowed
// set. A nil claims value means the caller presented no valid token.
func Require(claims *token.Claims, capability Capability) error {
	if claims == nil {
		return fmt.Errorf("%w: no identity", model.ErrAuth)
	}

	for _, role := range capabilityRoles[capability] {
		if claims.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not %s", model.ErrPermission, claims.Role, capability)
}

// ReadScope returns the owner filter for list and read operations: the
// empty string grants visibility across all owners, anything else
// restricts the caller to its own secrets.
func ReadScope(claims *token.Claims) string {
	if claims.Role.ReadsAllOwners() {
		return ""
	}
	return claims.Username()
}

// RotateScope returns the owner filter for rotation. Admins rotate
// vault-wide; operators only their own secrets.
func RotateScope(claims *token.Claims) string {
	if claims.Role == model.RoleAdmin {
		return ""
	}
	return claims.Username()
}
