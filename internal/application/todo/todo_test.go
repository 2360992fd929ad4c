package todo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/persistence/memory"
)

type fixture struct {
	todos    *memory.TodoRepository
	projects *memory.ProjectRepository
	owner    domain.UserID
	project  *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		todos:    memory.NewTodoRepository(store),
		projects: memory.NewProjectRepository(store),
		owner:    domain.NewUserID(uuid.New()),
	}
	f.project = f.addProject(t, f.owner, "Work")
	return f
}

func (f *fixture) addProject(t *testing.T, owner domain.UserID, name string) *domain.Project {
	t.Helper()
	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), Name: name, OwnerID: owner, CreatedAt: time.Now().UTC()}
	if err := f.projects.Create(context.Background(), p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (f *fixture) addTodo(t *testing.T, title string, starred bool) *domain.Todo {
	t.Helper()
	res, err := NewCreateTodo(f.todos, f.projects).Execute(context.Background(), CreateTodoInput{
		OwnerID:   f.owner,
		Title:     title,
		Starred:   starred,
		ProjectID: f.project.ID.String(),
	})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	return res.Todo
}

func ptr[T any](v T) *T { return &v }

func TestCreateTodo(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTodo(f.todos, f.projects)
	ctx := context.Background()

	res, err := uc.Execute(ctx, CreateTodoInput{OwnerID: f.owner, Title: "Write", ProjectID: f.project.ID.String(), DueAt: "2026-11-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Todo.Completed || res.Todo.DueAt == nil || res.Todo.DueAt.Format(time.DateOnly) != "2026-11-01" {
		t.Fatalf("unexpected todo: %+v", res.Todo)
	}
	if _, err := uc.Execute(ctx, CreateTodoInput{OwnerID: f.owner, Title: "x", ProjectID: f.project.ID.String(), DueAt: "2026-11-01T10:00:00Z"}); err != nil {
		t.Fatalf("rfc3339 date: %v", err)
	}

	cases := []CreateTodoInput{
		{OwnerID: f.owner, ProjectID: f.project.ID.String()},
		{OwnerID: f.owner, Title: "x"},
		{OwnerID: f.owner, Title: "x", ProjectID: "not-an-id"},
		{OwnerID: f.owner, Title: "x", ProjectID: uuid.NewString()},
		{OwnerID: domain.NewUserID(uuid.New()), Title: "x", ProjectID: f.project.ID.String()},
		{OwnerID: f.owner, Title: "x", ProjectID: f.project.ID.String(), DueAt: "tomorrow"},
	}
	for i, in := range cases {
		if _, err := uc.Execute(ctx, in); !errors.Is(err, domerrors.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestListTodos_Filters(t *testing.T) {
	f := newFixture(t)
	uc := NewListTodos(f.todos)
	ctx := context.Background()
	f.addTodo(t, "a", true)
	f.addTodo(t, "b", false)
	other := f.addProject(t, f.owner, "Home")

	all, err := uc.Execute(ctx, ListTodosInput{OwnerID: f.owner})
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
	starred, err := uc.Execute(ctx, ListTodosInput{OwnerID: f.owner, FilterBy: "starred", Value: "true"})
	if err != nil || len(starred) != 1 || starred[0].Title != "a" {
		t.Fatalf("starred filter: %v %v", err, starred)
	}
	byProject, err := uc.Execute(ctx, ListTodosInput{OwnerID: f.owner, FilterBy: "project", Value: other.ID.String()})
	if err != nil || len(byProject) != 0 {
		t.Fatalf("project filter: %v len=%d", err, len(byProject))
	}
	// A filter without a value is ignored.
	ignored, err := uc.Execute(ctx, ListTodosInput{OwnerID: f.owner, FilterBy: "starred"})
	if err != nil || len(ignored) != 2 {
		t.Fatalf("half filter: %v len=%d", err, len(ignored))
	}
	for _, in := range []ListTodosInput{
		{OwnerID: f.owner, FilterBy: "starred", Value: "yes"},
		{OwnerID: f.owner, FilterBy: "color", Value: "red"},
		{OwnerID: f.owner, FilterBy: "project", Value: "123"},
	} {
		if _, err := uc.Execute(ctx, in); !errors.Is(err, domerrors.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestGetTodo_OwnershipGuard(t *testing.T) {
	f := newFixture(t)
	todo := f.addTodo(t, "secret", false)
	uc := NewGetTodo(f.todos)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, GetTodoInput{CallerID: domain.NewUserID(uuid.New()), TodoID: todo.ID}); err != domerrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Execute(ctx, GetTodoInput{CallerID: f.owner, TodoID: domain.NewTodoID(uuid.New())}); err != domerrors.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	got, err := uc.Execute(ctx, GetTodoInput{CallerID: f.owner, TodoID: todo.ID})
	if err != nil || got.Title != "secret" {
		t.Fatalf("get: %v", err)
	}
}

func TestUpdateTodo_PartialAndIdempotent(t *testing.T) {
	f := newFixture(t)
	todo := f.addTodo(t, "draft", false)
	uc := NewUpdateTodo(f.todos, f.projects)
	ctx := context.Background()

	time.Sleep(time.Millisecond)
	first, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, Completed: ptr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !first.Todo.Completed || first.Todo.Title != "draft" {
		t.Fatalf("unexpected todo: %+v", first.Todo)
	}
	if !first.Todo.UpdatedAt.After(todo.UpdatedAt) {
		t.Fatal("updatedAt did not move")
	}
	second, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, Completed: ptr(true)})
	if err != nil {
		t.Fatalf("repeat update: %v", err)
	}
	if !second.Todo.UpdatedAt.Equal(first.Todo.UpdatedAt) {
		t.Fatal("repeating the same update changed updatedAt")
	}

	if _, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, Title: ptr("  ")}); !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty title, got %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, DueAt: ptr("31/12/2026")}); !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}
}

func TestUpdateTodo_MoveProject(t *testing.T) {
	f := newFixture(t)
	todo := f.addTodo(t, "move me", false)
	uc := NewUpdateTodo(f.todos, f.projects)
	ctx := context.Background()

	foreign := f.addProject(t, domain.NewUserID(uuid.New()), "Theirs")
	if _, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, ProjectID: ptr(foreign.ID.String())}); err != domerrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, ProjectID: ptr(uuid.NewString())}); !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateTodoInput{CallerID: domain.NewUserID(uuid.New()), TodoID: todo.ID, Title: ptr("x")}); err != domerrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	home := f.addProject(t, f.owner, "Home")
	res, err := uc.Execute(ctx, UpdateTodoInput{CallerID: f.owner, TodoID: todo.ID, ProjectID: ptr(home.ID.String())})
	if err != nil || res.Todo.ProjectID != home.ID {
		t.Fatalf("move: %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	f := newFixture(t)
	todo := f.addTodo(t, "gone", false)
	uc := NewDeleteTodo(f.todos)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, DeleteTodoInput{CallerID: domain.NewUserID(uuid.New()), TodoID: todo.ID}); err != domerrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	res, err := uc.Execute(ctx, DeleteTodoInput{CallerID: f.owner, TodoID: todo.ID})
	if err != nil || res.Todo.Title != "gone" {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Execute(ctx, DeleteTodoInput{CallerID: f.owner, TodoID: todo.ID}); err != domerrors.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}
