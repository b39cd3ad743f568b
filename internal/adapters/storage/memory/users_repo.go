package memory

import (
	"context"
	"strings"

	"pet-shelter-platform/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	defer r.s.lock(ctx)()

	u.ID = r.s.nextID()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	defer r.s.lock(ctx)()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}

func (r *userRepo) Count(ctx context.Context, f users.CountFilter) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, u := range r.s.users {
		if f.ExcludeBanned && u.Banned {
			continue
		}
		if f.ActivatedOnly && !u.Activated {
			continue
		}
		n++
	}
	return n, nil
}
