package ports

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil) when
// nothing matches. Username and email comparisons ignore case and accents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID domain.UserID) error
}

// ProjectRepository defines persistence for projects. Names are unique per owner.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	FindByName(ctx context.Context, ownerID domain.UserID, name string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error)
	CountByOwner(ctx context.Context, ownerID domain.UserID) (int64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, projectID domain.ProjectID) error
}

// TodoRepository defines persistence for todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, todoID domain.TodoID) (*domain.Todo, error)
	List(ctx context.Context, filter domain.TodoFilter) ([]*domain.Todo, error)
	CountByProject(ctx context.Context, projectID domain.ProjectID) (int64, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, todoID domain.TodoID) error
}

// HealthChecker is implemented by stores that can report reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
