package memory

import (
	"context"
	"sort"
	"strings"

	"pet-shelter-platform/internal/domain/categories"
)

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(ctx context.Context, c categories.Category) (categories.Category, error) {
	defer r.s.lock(ctx)()

	c.ID = r.s.nextID()
	r.s.cats[c.ID] = c
	return c, nil
}

func (r *categoryRepo) Update(ctx context.Context, c categories.Category) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.cats[c.ID]; !ok {
		return ErrNotFound
	}
	r.s.cats[c.ID] = c
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (categories.Category, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.cats[id]
	if !ok {
		return categories.Category{}, ErrNotFound
	}
	return c, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, shelterID int64, name string) (categories.Category, error) {
	defer r.s.lock(ctx)()

	for _, c := range r.s.cats {
		if c.ShelterID == shelterID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return categories.Category{}, ErrNotFound
}

func (r *categoryRepo) GetUnset(ctx context.Context, shelterID int64) (categories.Category, error) {
	defer r.s.lock(ctx)()

	for _, c := range r.s.cats {
		if c.ShelterID == shelterID && c.Unset {
			return c, nil
		}
	}
	return categories.Category{}, ErrNotFound
}

func (r *categoryRepo) ListByShelter(ctx context.Context, shelterID int64) ([]categories.Category, error) {
	defer r.s.lock(ctx)()

	out := make([]categories.Category, 0)
	for _, c := range r.s.cats {
		if c.ShelterID == shelterID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.cats[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.cats, id)
	return nil
}

func (r *categoryRepo) DeleteAllForShelter(ctx context.Context, shelterID int64) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for id, c := range r.s.cats {
		if c.ShelterID == shelterID {
			delete(r.s.cats, id)
			n++
		}
	}
	return n, nil
}
