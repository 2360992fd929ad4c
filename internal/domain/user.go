package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account that owns projects and todos.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role Role) bool {
	return HasRole(u.Roles, role)
}

// RoleNames returns the roles as plain strings (token claims, JSON).
func (u *User) RoleNames() []string {
	return RoleNames(u.Roles)
}
