package model

// Role is the access level assigned to a user at registration.
type Role string

const (
	// RoleAdmin may manage users and read, write and rotate every
	// secret in the vault.
	RoleAdmin Role = "admin"

	// RoleOperator may write secrets and rotate the ones it owns.
	RoleOperator Role = "operator"

	// RoleAuditor has read-only access to all secrets and to the
	// audit trail.
	RoleAuditor Role = "auditor"

	// RoleUser may store and read its own secrets.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleAuditor, RoleUser:
		return true
	}
	return false
}

// ReadsAllOwners reports whether the role sees secrets across all
// owners. Other roles are implicitly scoped to their own secrets.
func (r Role) ReadsAllOwners() bool {
	return r == RoleAdmin || r == RoleAuditor
}

func (r Role) String() string {
	return string(r)
}
