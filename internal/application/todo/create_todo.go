package todo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type CreateTodoInput struct {
	OwnerID     domain.UserID
	Title       string
	Description string
	Starred     bool
	DueAt       string
	ProjectID   string
}

type CreateTodoResult struct {
	Todo *domain.Todo
}

// CreateTodo adds an incomplete todo to one of the caller's projects.
type CreateTodo struct {
	todoRepo    ports.TodoRepository
	projectRepo ports.ProjectRepository
}

func NewCreateTodo(todoRepo ports.TodoRepository, projectRepo ports.ProjectRepository) *CreateTodo {
	return &CreateTodo{todoRepo: todoRepo, projectRepo: projectRepo}
}

func (uc *CreateTodo) Execute(ctx context.Context, input CreateTodoInput) (*CreateTodoResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.ProjectID) == "" {
		return nil, domerrors.Invalid("All fields are required")
	}
	projectID, err := parseProjectRef(input.ProjectID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	// Someone else's project is reported the same as a missing one.
	if project == nil || project.OwnerID != input.OwnerID {
		return nil, domerrors.Invalid("Invalid Project ID")
	}
	var dueAt *time.Time
	if strings.TrimSpace(input.DueAt) != "" {
		t, err := parseDueAt(input.DueAt)
		if err != nil {
			return nil, err
		}
		dueAt = &t
	}
	now := domain.Now()
	todo := &domain.Todo{
		ID:          domain.NewTodoID(uuid.New()),
		Title:       title,
		Description: input.Description,
		Starred:     input.Starred,
		DueAt:       dueAt,
		ProjectID:   project.ID,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return &CreateTodoResult{Todo: todo}, nil
}
