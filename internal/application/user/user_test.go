package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/persistence/memory"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/security"
)

func strPtr(s string) *string { return &s }

func setup() (*memory.UserRepository, *memory.ProjectRepository, *security.BcryptHasher) {
	store := memory.NewStore()
	return memory.NewUserRepository(store), memory.NewProjectRepository(store), security.NewBcryptHasher(bcrypt.MinCost)
}

func mustCreate(t *testing.T, uc *CreateUser, username, email string) *domain.User {
	t.Helper()
	res, err := uc.Execute(context.Background(), CreateUserInput{Username: username, Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return res.User
}

func identity(u *domain.User) *domain.Identity {
	return &domain.Identity{UserID: u.ID, Username: u.Username, Roles: u.Roles}
}

func TestCreateUser(t *testing.T) {
	users, _, hasher := setup()
	uc := NewCreateUser(users, hasher)
	ctx := context.Background()

	u := mustCreate(t, uc, "alice", "  Alice@Example.COM ")
	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if len(u.Roles) != 1 || u.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected default roles: %v", u.Roles)
	}
	if !hasher.Verify("password123", u.PasswordHash) {
		t.Fatal("password was not hashed")
	}

	_, err := uc.Execute(ctx, CreateUserInput{Username: "ALICE", Email: "new@example.com", Password: "password123"})
	if err != domerrors.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	_, err = uc.Execute(ctx, CreateUserInput{Username: "bob", Email: "ALICE@example.com", Password: "password123"})
	if err != domerrors.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	_, err = uc.Execute(ctx, CreateUserInput{Username: "bob", Email: "bob@example.com", Password: "short"})
	if !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	_, err = uc.Execute(ctx, CreateUserInput{Username: "bob", Email: "not-an-email", Password: "password123"})
	if !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
}

func TestCreateUser_PasswordByteLimit(t *testing.T) {
	users, _, hasher := setup()
	uc := NewCreateUser(users, hasher)
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"72 bytes", strings.Repeat("p", 72), true},
		{"73 bytes", strings.Repeat("p", 73), false},
		{"40 two-byte runes", strings.Repeat("é", 40), false},
	}
	for i, tc := range cases {
		username := fmt.Sprintf("user%d", i)
		_, err := uc.Execute(ctx, CreateUserInput{Username: username, Email: username + "@example.com", Password: tc.password})
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, domerrors.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestUpdateUser_RejectsLongPassword(t *testing.T) {
	users, _, hasher := setup()
	u := mustCreate(t, NewCreateUser(users, hasher), "alice", "alice@example.com")

	_, err := NewUpdateUser(users, hasher).Execute(context.Background(), UpdateUserInput{
		Caller:   identity(u),
		ID:       u.ID,
		Password: strPtr(strings.Repeat("p", 100)),
	})
	if !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListUsers_ClampsLimit(t *testing.T) {
	users, _, hasher := setup()
	create := NewCreateUser(users, hasher)
	mustCreate(t, create, "a", "a@example.com")
	mustCreate(t, create, "b", "b@example.com")

	list, err := NewListUsers(users).Execute(context.Background(), ListUsersInput{Limit: 1000, Offset: -3})
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
}

func TestUpdateUser_Permissions(t *testing.T) {
	users, _, hasher := setup()
	create := NewCreateUser(users, hasher)
	uc := NewUpdateUser(users, hasher)
	ctx := context.Background()
	alice := mustCreate(t, create, "alice", "alice@example.com")
	bob := mustCreate(t, create, "bob", "bob@example.com")

	_, err := uc.Execute(ctx, UpdateUserInput{Caller: identity(bob), ID: alice.ID, Username: strPtr("x")})
	if err != domerrors.ErrForbidden {
		t.Fatalf("non-admin editing another user: expected ErrForbidden, got %v", err)
	}
	_, err = uc.Execute(ctx, UpdateUserInput{Caller: identity(bob), ID: bob.ID, Roles: []string{"Admin"}})
	if err != domerrors.ErrForbidden {
		t.Fatalf("non-admin changing roles: expected ErrForbidden, got %v", err)
	}
	_, err = uc.Execute(ctx, UpdateUserInput{Caller: identity(bob), ID: domain.NewUserID(uuid.New())})
	if err != domerrors.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	admin := &domain.Identity{UserID: domain.NewUserID(uuid.New()), Username: "root", Roles: []domain.Role{domain.RoleAdmin}}
	res, err := uc.Execute(ctx, UpdateUserInput{Caller: admin, ID: bob.ID, Roles: []string{"User", "Admin"}})
	if err != nil || !res.User.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin role change: %v", err)
	}
	_, err = uc.Execute(ctx, UpdateUserInput{Caller: admin, ID: bob.ID, Roles: []string{}})
	if !errors.Is(err, domerrors.ErrValidation) {
		t.Fatalf("empty roles: expected ErrValidation, got %v", err)
	}
}

func TestUpdateUser_Duplicates(t *testing.T) {
	users, _, hasher := setup()
	create := NewCreateUser(users, hasher)
	uc := NewUpdateUser(users, hasher)
	ctx := context.Background()
	alice := mustCreate(t, create, "alice", "alice@example.com")
	mustCreate(t, create, "bob", "bob@example.com")

	_, err := uc.Execute(ctx, UpdateUserInput{Caller: identity(alice), ID: alice.ID, Username: strPtr("BOB")})
	if err != domerrors.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	_, err = uc.Execute(ctx, UpdateUserInput{Caller: identity(alice), ID: alice.ID, Email: strPtr("Bob@example.com")})
	if err != domerrors.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	res, err := uc.Execute(ctx, UpdateUserInput{Caller: identity(alice), ID: alice.ID, Username: strPtr("Alice")})
	if err != nil || res.User.Username != "Alice" {
		t.Fatalf("self match should be allowed: %v", err)
	}
}

func TestUpdateUser_NoChangeKeepsTimestamp(t *testing.T) {
	users, _, hasher := setup()
	alice := mustCreate(t, NewCreateUser(users, hasher), "alice", "alice@example.com")
	uc := NewUpdateUser(users, hasher)

	time.Sleep(time.Millisecond)
	res, err := uc.Execute(context.Background(), UpdateUserInput{Caller: identity(alice), ID: alice.ID, Email: strPtr("alice@example.com")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !res.User.UpdatedAt.Equal(alice.UpdatedAt) {
		t.Fatal("updatedAt moved without a change")
	}
}

func TestDeleteUser_BlockedByProjects(t *testing.T) {
	users, projects, hasher := setup()
	alice := mustCreate(t, NewCreateUser(users, hasher), "alice", "alice@example.com")
	uc := NewDeleteUser(users, projects)
	ctx := context.Background()

	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), Name: "Home", OwnerID: alice.ID}
	if err := projects.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := uc.Execute(ctx, DeleteUserInput{ID: alice.ID}); err != domerrors.ErrUserHasProjects {
		t.Fatalf("expected ErrUserHasProjects, got %v", err)
	}
	if err := projects.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	res, err := uc.Execute(ctx, DeleteUserInput{ID: alice.ID})
	if err != nil || res.User.ID != alice.ID {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Execute(ctx, DeleteUserInput{ID: alice.ID}); err != domerrors.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
