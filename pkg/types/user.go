// Package types defines the EventHub domain model shared by the stores,
// the API bindings, and the CLI: users, events, registrations, and the
// aggregate statistics the admin dashboards render.
package types

import "github.com/agentstation/utc"

// Role is a user's authorization role. Roles are owned by the backend;
// the client only reads them to decide which views to offer.
type Role string

// User roles.
const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role grants access to the admin dashboards.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the read-only cached snapshot of a backend account.
type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	CreatedAt utc.Time `json:"createdAt,omitzero"`
}

// IsAdmin reports whether the user may access admin operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}
