package auth

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// WhoAmI loads the account behind a verified access token.
type WhoAmI struct {
	users ports.UserRepository
}

func NewWhoAmI(users ports.UserRepository) *WhoAmI {
	return &WhoAmI{users: users}
}

func (uc *WhoAmI) Execute(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if caller == nil {
		return nil, domerrors.ErrTokenMissing
	}
	user, err := uc.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	return user, nil
}
