package project

import (
	"context"
	"strings"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type UpdateProjectInput struct {
	CallerID  domain.UserID
	ProjectID domain.ProjectID
	Name      string
}

type UpdateProjectResult struct {
	Project *domain.Project
}

// UpdateProject renames a project owned by the caller.
type UpdateProject struct {
	projectRepo ports.ProjectRepository
}

func NewUpdateProject(projectRepo ports.ProjectRepository) *UpdateProject {
	return &UpdateProject{projectRepo: projectRepo}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectResult, error) {
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
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domerrors.Invalid("All fields are required!")
	}
	other, err := uc.projectRepo.FindByName(ctx, project.OwnerID, name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != project.ID {
		return nil, domerrors.ErrProjectExists
	}
	if name == project.Name {
		return &UpdateProjectResult{Project: project}, nil
	}
	project.Name = name
	project.UpdatedAt = domain.Now()
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return &UpdateProjectResult{Project: project}, nil
}
