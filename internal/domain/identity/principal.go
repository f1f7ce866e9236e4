package identity

import "github.com/google/uuid"

// Principal is the authenticated caller of an operation
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsAdmin returns true if the caller has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessTenant returns true if the caller may read data owned by tenantID
func (p Principal) CanAccessTenant(tenantID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == tenantID
}
