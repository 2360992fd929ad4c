package memory

import (
	"context"
	"sort"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

// conflict must be called with the store lock held. Usernames are checked
// before emails so the reported clash does not depend on map order.
func (r *UserRepository) conflict(u *domain.User) error {
	for id, other := range r.s.users {
		if id != u.ID && r.s.sameKey(other.Username, u.Username) {
			return domerrors.ErrUserExists
		}
	}
	for id, other := range r.s.users {
		if id != u.ID && r.s.sameKey(other.Email, u.Email) {
			return domerrors.ErrEmailExists
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return domerrors.ErrUserExists
	}
	if err := r.conflict(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if r.s.sameKey(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if r.s.sameKey(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.s.mu.Lock()
	all := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, cloneUser(u))
	}
	r.s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool {
		return before(all[i].CreatedAt, all[j].CreatedAt, all[i].ID.String(), all[j].ID.String())
	})
	if offset >= len(all) {
		return []*domain.User{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domerrors.ErrUserNotFound
	}
	if err := r.conflict(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return domerrors.ErrUserNotFound
	}
	delete(r.s.users, userID)
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
