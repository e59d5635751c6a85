package domain

import "time"

// Role is the closed set of access levels a user can hold.
type Role string

const (
	// RoleViewer is the default role assigned at registration.
	RoleViewer Role = "viewer"
	// RoleAuthor can create posts, moderate comments and bypass
	// ownership checks on other users' resources.
	RoleAuthor Role = "author"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleAuthor
}

// User is the domain model for registered accounts. A user owns itself:
// the owner reference of a User is its own ID.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
