package project

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type DeleteProjectInput struct {
	CallerID  domain.UserID
	ProjectID domain.ProjectID
}

type DeleteProjectResult struct {
	Project *domain.Project
}

// DeleteProject removes an empty project owned by the caller.
type DeleteProject struct {
	projectRepo ports.ProjectRepository
	todoRepo    ports.TodoRepository
}

func NewDeleteProject(projectRepo ports.ProjectRepository, todoRepo ports.TodoRepository) *DeleteProject {
	return &DeleteProject{projectRepo: projectRepo, todoRepo: todoRepo}
}

func (uc *DeleteProject) Execute(ctx context.Context, input DeleteProjectInput) (*DeleteProjectResult, error) {
	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if err := domain.CheckOwner(project.OwnerID, input.CallerID); err != nil {
		return nil, err
	}
	n, err := uc.todoRepo.CountByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domerrors.ErrProjectHasTodos
	}
	if err := uc.projectRepo.Delete(ctx, project.ID); err != nil {
		return nil, err
	}
	return &DeleteProjectResult{Project: project}, nil
}
