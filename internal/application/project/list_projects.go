package project

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
)

// ListProjects returns the caller's projects, oldest first.
type ListProjects struct {
	projectRepo ports.ProjectRepository
}

func NewListProjects(projectRepo ports.ProjectRepository) *ListProjects {
	return &ListProjects{projectRepo: projectRepo}
}

func (uc *ListProjects) Execute(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	return uc.projectRepo.ListByOwner(ctx, ownerID)
}
