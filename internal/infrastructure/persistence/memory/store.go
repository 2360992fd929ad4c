// Package memory is an in-process credential store for single-instance
// development and tests. Uniqueness is enforced here the same way the mongo
// unique indexes enforce it: case- and accent-insensitive.
package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

// Store holds all three collections. A single mutex also serializes the
// collator, which is not safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	collator *collate.Collator
	users    map[domain.UserID]domain.User
	projects map[domain.ProjectID]domain.Project
	todos    map[domain.TodoID]domain.Todo
}

func NewStore() *Store {
	return &Store{
		collator: collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics),
		users:    make(map[domain.UserID]domain.User),
		projects: make(map[domain.ProjectID]domain.Project),
		todos:    make(map[domain.TodoID]domain.Todo),
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// sameKey must be called with s.mu held.
func (s *Store) sameKey(a, b string) bool {
	return s.collator.CompareString(a, b) == 0
}

func cloneUser(u domain.User) *domain.User {
	u.Roles = append([]domain.Role(nil), u.Roles...)
	return &u
}

func cloneProject(p domain.Project) *domain.Project {
	return &p
}

func cloneTodo(t domain.Todo) *domain.Todo {
	if t.DueAt != nil {
		d := *t.DueAt
		t.DueAt = &d
	}
	return &t
}

func before(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA < idB
	}
	return a.Before(b)
}
