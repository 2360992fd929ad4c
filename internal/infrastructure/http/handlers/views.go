package handlers

import (
	"time"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

// UserResponse is the JSON shape of a user (no password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"projectName"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Starred     bool       `json:"starred"`
	Completed   bool       `json:"completed"`
	DueAt       *time.Time `json:"dueAt"`
	ProjectID   string     `json:"projectId"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func projectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		ProjectName: p.Name,
		UserID:      p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func todoResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Starred:     t.Starred,
		Completed:   t.Completed,
		DueAt:       t.DueAt,
		ProjectID:   t.ProjectID.String(),
		UserID:      t.OwnerID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
