package todo

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

const (
	FilterByProject = "project"
	FilterByStarred = "starred"
)

// ListTodosInput takes the raw query parameters. The filter applies only when
// both FilterBy and Value are set.
type ListTodosInput struct {
	OwnerID  domain.UserID
	FilterBy string
	Value    string
}

type ListTodos struct {
	todoRepo ports.TodoRepository
}

func NewListTodos(todoRepo ports.TodoRepository) *ListTodos {
	return &ListTodos{todoRepo: todoRepo}
}

func (uc *ListTodos) Execute(ctx context.Context, input ListTodosInput) ([]*domain.Todo, error) {
	filter := domain.TodoFilter{OwnerID: input.OwnerID}
	if input.FilterBy != "" && input.Value != "" {
		switch input.FilterBy {
		case FilterByProject:
			id, err := domain.ParseProjectID(input.Value)
			if err != nil {
				return nil, domerrors.Invalid("Invalid query params")
			}
			filter.ProjectID = &id
		case FilterByStarred:
			var starred bool
			switch input.Value {
			case "true":
				starred = true
			case "false":
			default:
				return nil, domerrors.Invalid("Invalid query params")
			}
			filter.Starred = &starred
		default:
			return nil, domerrors.Invalid("Invalid query params")
		}
	}
	return uc.todoRepo.List(ctx, filter)
}
