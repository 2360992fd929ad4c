package memory

import (
	"context"
	"sort"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type ProjectRepository struct {
	s *Store
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{s: s}
}

// conflict must be called with the store lock held.
func (r *ProjectRepository) conflict(p *domain.Project) error {
	for id, other := range r.s.projects {
		if id != p.ID && other.OwnerID == p.OwnerID && r.s.sameKey(other.Name, p.Name) {
			return domerrors.ErrProjectExists
		}
	}
	return nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[project.ID]; ok {
		return domerrors.ErrProjectExists
	}
	if err := r.conflict(project); err != nil {
		return err
	}
	r.s.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[projectID]
	if !ok {
		return nil, nil
	}
	return cloneProject(p), nil
}

func (r *ProjectRepository) FindByName(ctx context.Context, ownerID domain.UserID, name string) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.projects {
		if p.OwnerID == ownerID && r.s.sameKey(p.Name, name) {
			return cloneProject(p), nil
		}
	}
	return nil, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	r.s.mu.Lock()
	out := make([]*domain.Project, 0)
	for _, p := range r.s.projects {
		if p.OwnerID == ownerID {
			out = append(out, cloneProject(p))
		}
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].ID.String(), out[j].ID.String())
	})
	return out, nil
}

func (r *ProjectRepository) CountByOwner(ctx context.Context, ownerID domain.UserID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.projects {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[project.ID]; !ok {
		return domerrors.ErrProjectNotFound
	}
	if err := r.conflict(project); err != nil {
		return err
	}
	r.s.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[projectID]; !ok {
		return domerrors.ErrProjectNotFound
	}
	delete(r.s.projects, projectID)
	return nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
