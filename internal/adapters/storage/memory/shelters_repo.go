package memory

import (
	"context"
	"sort"
	"strings"

	"pet-shelter-platform/internal/domain/shelters"
)

type shelterRepo struct {
	s *Store
}

func (r *shelterRepo) Create(ctx context.Context, sh shelters.Shelter) (shelters.Shelter, error) {
	defer r.s.lock(ctx)()

	sh.ID = r.s.nextID()
	r.s.shelters[sh.ID] = sh
	return sh, nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	defer r.s.lock(ctx)()

	sh, ok := r.s.shelters[id]
	if !ok {
		return shelters.Shelter{}, ErrNotFound
	}
	return sh, nil
}

func (r *shelterRepo) GetByName(ctx context.Context, name string) (shelters.Shelter, error) {
	defer r.s.lock(ctx)()

	for _, sh := range r.s.shelters {
		if strings.EqualFold(sh.Name, name) {
			return sh, nil
		}
	}
	return shelters.Shelter{}, ErrNotFound
}

func (r *shelterRepo) GetByKind(ctx context.Context, k shelters.Kind) (shelters.Shelter, error) {
	defer r.s.lock(ctx)()

	for _, sh := range r.s.shelters {
		if sh.Kind == k {
			return sh, nil
		}
	}
	return shelters.Shelter{}, ErrNotFound
}

func (r *shelterRepo) ListActive(ctx context.Context) ([]shelters.Shelter, error) {
	defer r.s.lock(ctx)()

	out := make([]shelters.Shelter, 0)
	for _, sh := range r.s.shelters {
		if sh.Kind == shelters.KindRegular {
			out = append(out, sh)
		}
	}

	// orden estable por id (consistencia en dev)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *shelterRepo) CountActive(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, sh := range r.s.shelters {
		if sh.Kind == shelters.KindRegular {
			n++
		}
	}
	return n, nil
}

func (r *shelterRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.shelters[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.shelters, id)
	return nil
}
