package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

type CreateUserResult struct {
	User *domain.User
}

// CreateUser registers an account with the default roles.
type CreateUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewCreateUser(users ports.UserRepository, hasher ports.PasswordHasher) *CreateUser {
	return &CreateUser{users: users, hasher: hasher}
}

func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domerrors.Invalid("All fields are required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}
	existing, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	existing, err = uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := domain.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        domain.DefaultRoles(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &CreateUserResult{User: user}, nil
}
