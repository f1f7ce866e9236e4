package identity

import "strings"

// Role is the access role of a user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTenant
}

// String returns the string form of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role name, falling back to tenant for unknown values
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return RoleTenant
	}
	return r
}

// JoinRoles renders roles as a comma separated list
func JoinRoles(roles []Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
