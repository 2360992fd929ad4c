package todo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// UpdateTodoInput is a partial update; nil fields are left alone. An empty
// DueAt clears the due date.
type UpdateTodoInput struct {
	CallerID    domain.UserID
	TodoID      domain.TodoID
	Title       *string
	Description *string
	Starred     *bool
	Completed   *bool
	DueAt       *string
	ProjectID   *string
}

type UpdateTodoResult struct {
	Todo *domain.Todo
}

type UpdateTodo struct {
	todoRepo    ports.TodoRepository
	projectRepo ports.ProjectRepository
}

func NewUpdateTodo(todoRepo ports.TodoRepository, projectRepo ports.ProjectRepository) *UpdateTodo {
	return &UpdateTodo{todoRepo: todoRepo, projectRepo: projectRepo}
}

func (uc *UpdateTodo) Execute(ctx context.Context, input UpdateTodoInput) (*UpdateTodoResult, error) {
	todo, err := loadOwned(ctx, uc.todoRepo, input.TodoID, input.CallerID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domerrors.Invalid("Title must not be empty")
		}
		if title != todo.Title {
			todo.Title = title
			changed = true
		}
	}
	if input.Description != nil && *input.Description != todo.Description {
		todo.Description = *input.Description
		changed = true
	}
	if input.Starred != nil && *input.Starred != todo.Starred {
		todo.Starred = *input.Starred
		changed = true
	}
	if input.Completed != nil && *input.Completed != todo.Completed {
		todo.Completed = *input.Completed
		changed = true
	}
	if input.DueAt != nil {
		var dueAt *time.Time
		if strings.TrimSpace(*input.DueAt) != "" {
			t, err := parseDueAt(*input.DueAt)
			if err != nil {
				return nil, err
			}
			dueAt = &t
		}
		if !sameTime(dueAt, todo.DueAt) {
			todo.DueAt = dueAt
			changed = true
		}
	}
	if input.ProjectID != nil {
		projectID, err := parseProjectRef(*input.ProjectID)
		if err != nil {
			return nil, err
		}
		if projectID != todo.ProjectID {
			project, err := uc.projectRepo.GetByID(ctx, projectID)
			if err != nil {
				return nil, err
			}
			if project == nil {
				return nil, fmt.Errorf("%w: %s", domerrors.ErrProjectNotFound, projectID)
			}
			if err := domain.CheckOwner(project.OwnerID, input.CallerID); err != nil {
				return nil, err
			}
			todo.ProjectID = project.ID
			changed = true
		}
	}

	if !changed {
		return &UpdateTodoResult{Todo: todo}, nil
	}
	todo.UpdatedAt = domain.Now()
	if err := uc.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return &UpdateTodoResult{Todo: todo}, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
