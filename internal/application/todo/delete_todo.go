package todo

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
)

type DeleteTodoInput struct {
	CallerID domain.UserID
	TodoID   domain.TodoID
}

type DeleteTodoResult struct {
	Todo *domain.Todo
}

type DeleteTodo struct {
	todoRepo ports.TodoRepository
}

func NewDeleteTodo(todoRepo ports.TodoRepository) *DeleteTodo {
	return &DeleteTodo{todoRepo: todoRepo}
}

func (uc *DeleteTodo) Execute(ctx context.Context, input DeleteTodoInput) (*DeleteTodoResult, error) {
	todo, err := loadOwned(ctx, uc.todoRepo, input.TodoID, input.CallerID)
	if err != nil {
		return nil, err
	}
	if err := uc.todoRepo.Delete(ctx, todo.ID); err != nil {
		return nil, err
	}
	return &DeleteTodoResult{Todo: todo}, nil
}
