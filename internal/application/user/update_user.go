package user

import (
	"context"
	"strings"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// UpdateUserInput carries a partial update. Nil fields stay unchanged.
type UpdateUserInput struct {
	Caller   *domain.Identity
	ID       domain.UserID
	Username *string
	Email    *string
	Password *string
	Roles    []string
}

type UpdateUserResult struct {
	User *domain.User
}

// UpdateUser lets callers edit their own account. Editing another account or
// any roles requires the Admin role.
type UpdateUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewUpdateUser(users ports.UserRepository, hasher ports.PasswordHasher) *UpdateUser {
	return &UpdateUser{users: users, hasher: hasher}
}

func (uc *UpdateUser) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserResult, error) {
	if input.Caller == nil {
		return nil, domerrors.ErrTokenMissing
	}
	user, err := uc.users.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	admin := input.Caller.HasRole(domain.RoleAdmin)
	if input.Caller.UserID != user.ID && !admin {
		return nil, domerrors.ErrForbidden
	}
	if input.Roles != nil && !admin {
		return nil, domerrors.ErrForbidden
	}

	changed := false
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, domerrors.Invalid("Username must not be empty")
		}
		other, err := uc.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domerrors.ErrUserExists
		}
		if username != user.Username {
			user.Username = username
			changed = true
		}
	}
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		other, err := uc.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domerrors.ErrEmailExists
		}
		if email != user.Email {
			user.Email = email
			changed = true
		}
	}
	if input.Password != nil {
		if err := checkPassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := uc.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		changed = true
	}
	if input.Roles != nil {
		roles, err := domain.ParseRoles(input.Roles)
		if err != nil {
			return nil, domerrors.Invalid("Invalid roles")
		}
		if !sameRoles(roles, user.Roles) {
			user.Roles = roles
			changed = true
		}
	}
	if !changed {
		return &UpdateUserResult{User: user}, nil
	}
	user.UpdatedAt = domain.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &UpdateUserResult{User: user}, nil
}

func sameRoles(a, b []domain.Role) bool {
	if len(a) != len(b) {
		return false
	}
	for _, r := range a {
		if !domain.HasRole(b, r) {
			return false
		}
	}
	return true
}
