package mongodb

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Roles     []string  `bson:"roles"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type projectDocument struct {
	ID          string    `bson:"_id"`
	ProjectName string    `bson:"projectName"`
	UserID      string    `bson:"userId"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type todoDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	Starred     bool       `bson:"starred"`
	Completed   bool       `bson:"completed"`
	DueAt       *time.Time `bson:"dueAt,omitempty"`
	ProjectID   string     `bson:"projectId"`
	UserID      string     `bson:"userId"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func userToDocument(u *domain.User) userDocument {
	return userDocument{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func documentToUser(d userDocument) (*domain.User, error) {
	id, err := domain.ParseUserID(d.ID)
	if err != nil {
		return nil, err
	}
	roles, err := domain.ParseRoles(d.Roles)
	if err != nil {
		// Documents written before roles were enforced.
		roles = domain.DefaultRoles()
	}
	return &domain.User{
		ID:           id,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Roles:        roles,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func projectToDocument(p *domain.Project) projectDocument {
	return projectDocument{
		ID:          p.ID.String(),
		ProjectName: p.Name,
		UserID:      p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func documentToProject(d projectDocument) (*domain.Project, error) {
	id, err := domain.ParseProjectID(d.ID)
	if err != nil {
		return nil, err
	}
	owner, err := domain.ParseUserID(d.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Project{ID: id, Name: d.ProjectName, OwnerID: owner, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, nil
}

func todoToDocument(t *domain.Todo) todoDocument {
	return todoDocument{
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

func documentToTodo(d todoDocument) (*domain.Todo, error) {
	id, err := domain.ParseTodoID(d.ID)
	if err != nil {
		return nil, err
	}
	project, err := domain.ParseProjectID(d.ProjectID)
	if err != nil {
		return nil, err
	}
	owner, err := domain.ParseUserID(d.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Todo{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Starred:     d.Starred,
		Completed:   d.Completed,
		DueAt:       d.DueAt,
		ProjectID:   project,
		OwnerID:     owner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func todoFilterDocument(f domain.TodoFilter) bson.M {
	filter := bson.M{"userId": f.OwnerID.String()}
	if f.ProjectID != nil {
		filter["projectId"] = f.ProjectID.String()
	}
	if f.Starred != nil {
		filter["starred"] = *f.Starred
	}
	return filter
}

// duplicateIndex returns the name of the unique index a write violated, or ""
// when err is not a duplicate key error.
func duplicateIndex(err error) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			for _, name := range []string{usernameIndex, emailIndex, projectNameIndex} {
				if strings.Contains(e.Message, name) {
					return name
				}
			}
		}
	}
	return "unknown"
}
