package domain

import domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"

// Identity is the caller proven by a verified access token.
type Identity struct {
	UserID   UserID
	Username string
	Roles    []Role
}

// HasRole reports whether the caller carries role.
func (i *Identity) HasRole(role Role) bool {
	return i != nil && HasRole(i.Roles, role)
}

// CheckOwner is the ownership guard: it must run after the resource was found
// and before anything is mutated.
func CheckOwner(owner, caller UserID) error {
	if owner != caller {
		return domerrors.ErrForbidden
	}
	return nil
}
