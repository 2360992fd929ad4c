package domain

import (
	"time"

	"github.com/google/uuid"
)

// TodoID is a value object for todo identity.
type TodoID struct{ uuid.UUID }

// NewTodoID creates a new TodoID from uuid.
func NewTodoID(id uuid.UUID) TodoID { return TodoID{UUID: id} }

// ParseTodoID parses the canonical string form.
func ParseTodoID(s string) (TodoID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TodoID{}, err
	}
	return TodoID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TodoID) String() string { return t.UUID.String() }

// Todo is a task inside a project. ProjectID must reference a project owned by OwnerID.
type Todo struct {
	ID          TodoID
	Title       string
	Description string
	Starred     bool
	Completed   bool
	DueAt       *time.Time
	ProjectID   ProjectID
	OwnerID     UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoFilter narrows a todo listing. Nil fields do not filter.
type TodoFilter struct {
	OwnerID   UserID
	ProjectID *ProjectID
	Starred   *bool
}
