package user

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type DeleteUserInput struct {
	ID domain.UserID
}

type DeleteUserResult struct {
	User *domain.User
}

// DeleteUser refuses while the user still owns projects. Nothing cascades.
type DeleteUser struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
}

func NewDeleteUser(users ports.UserRepository, projects ports.ProjectRepository) *DeleteUser {
	return &DeleteUser{users: users, projects: projects}
}

func (uc *DeleteUser) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserResult, error) {
	user, err := uc.users.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	n, err := uc.projects.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domerrors.ErrUserHasProjects
	}
	if err := uc.users.Delete(ctx, user.ID); err != nil {
		return nil, err
	}
	return &DeleteUserResult{User: user}, nil
}
