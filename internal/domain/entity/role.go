// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleGuest indicates an unauthenticated viewer.
	RoleGuest Role = "guest"
	// RoleUser indicates a regular city resident account.
	RoleUser Role = "user"
	// RoleBusiness indicates a business-owner account.
	RoleBusiness Role = "business"
	// RoleModerator indicates an account that reviews submitted content.
	RoleModerator Role = "moderator"
	// RoleAdmin indicates a full administrative account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleBusiness, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanPublish reports whether the role may create business publications.
func (r Role) CanPublish() bool {
	return r == RoleBusiness || r == RoleAdmin
}
