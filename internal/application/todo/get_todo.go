package todo

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type GetTodoInput struct {
	CallerID domain.UserID
	TodoID   domain.TodoID
}

type GetTodo struct {
	todoRepo ports.TodoRepository
}

func NewGetTodo(todoRepo ports.TodoRepository) *GetTodo {
	return &GetTodo{todoRepo: todoRepo}
}

func (uc *GetTodo) Execute(ctx context.Context, input GetTodoInput) (*domain.Todo, error) {
	return loadOwned(ctx, uc.todoRepo, input.TodoID, input.CallerID)
}

// loadOwned applies the ownership guard: not found first, then owner.
func loadOwned(ctx context.Context, repo ports.TodoRepository, id domain.TodoID, caller domain.UserID) (*domain.Todo, error) {
	todo, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domerrors.ErrTodoNotFound
	}
	if err := domain.CheckOwner(todo.OwnerID, caller); err != nil {
		return nil, err
	}
	return todo, nil
}
