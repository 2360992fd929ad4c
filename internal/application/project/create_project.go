package project

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// CreateProjectInput is the owner and the project name.
type CreateProjectInput struct {
	OwnerID domain.UserID
	Name    string
}

// CreateProjectResult returns the created project.
type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject creates a project whose name is unique for its owner.
type CreateProject struct {
	projectRepo ports.ProjectRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(projectRepo ports.ProjectRepository) *CreateProject {
	return &CreateProject{projectRepo: projectRepo}
}

// Execute validates the name, checks for a duplicate and stores the project.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domerrors.Invalid("All fields are required!")
	}
	existing, err := uc.projectRepo.FindByName(ctx, input.OwnerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrProjectExists
	}
	now := domain.Now()
	project := &domain.Project{
		ID:        domain.NewProjectID(uuid.New()),
		Name:      name,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: project}, nil
}
