package memory

import (
	"context"
	"sort"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type TodoRepository struct {
	s *Store
}

func NewTodoRepository(s *Store) *TodoRepository {
	return &TodoRepository{s: s}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.todos[todo.ID]; ok {
		return domerrors.Invalid("todo already exists")
	}
	r.s.todos[todo.ID] = *cloneTodo(*todo)
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, todoID domain.TodoID) (*domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.todos[todoID]
	if !ok {
		return nil, nil
	}
	return cloneTodo(t), nil
}

// List returns matching todos, newest first.
func (r *TodoRepository) List(ctx context.Context, filter domain.TodoFilter) ([]*domain.Todo, error) {
	r.s.mu.Lock()
	out := make([]*domain.Todo, 0)
	for _, t := range r.s.todos {
		if t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Starred != nil && t.Starred != *filter.Starred {
			continue
		}
		out = append(out, cloneTodo(t))
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return before(out[j].CreatedAt, out[i].CreatedAt, out[j].ID.String(), out[i].ID.String())
	})
	return out, nil
}

func (r *TodoRepository) CountByProject(ctx context.Context, projectID domain.ProjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.todos {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.todos[todo.ID]; !ok {
		return domerrors.ErrTodoNotFound
	}
	r.s.todos[todo.ID] = *cloneTodo(*todo)
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, todoID domain.TodoID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.todos[todoID]; !ok {
		return domerrors.ErrTodoNotFound
	}
	delete(r.s.todos, todoID)
	return nil
}

var _ ports.TodoRepository = (*TodoRepository)(nil)
