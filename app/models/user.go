// Package models holds the records mirrored from the food-delivery backend.
//
// Nothing here is authoritative: every struct is a transient snapshot of a
// backend payload, refetched after each mutation rather than reconciled
// locally.
package models

// Role values understood by the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values for a user account.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// User is the identity record cached in the session after login.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status,omitempty"`
}

// IsAdmin reports whether the cached record claims the admin role.
// UI gating only: the backend re-checks the bearer token on every call.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
