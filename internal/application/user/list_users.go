package user

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type ListUsersInput struct {
	Limit  int
	Offset int
}

type ListUsers struct {
	users ports.UserRepository
}

func NewListUsers(users ports.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, input ListUsersInput) ([]*domain.User, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	return uc.users.List(ctx, limit, offset)
}
