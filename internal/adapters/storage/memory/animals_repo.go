package memory

import (
	"context"
	"sort"

	"pet-shelter-platform/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	defer r.s.lock(ctx)()

	a.ID = r.s.nextID()
	r.s.animals[a.ID] = a
	return a, nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.animals[a.ID]; !ok {
		return ErrNotFound
	}
	r.s.animals[a.ID] = a
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, ErrNotFound
	}
	return a, nil
}

// GetForUpdate: en memoria el mutex del store ya serializa.
func (r *animalRepo) GetForUpdate(ctx context.Context, id int64) (animals.Animal, error) {
	return r.GetByID(ctx, id)
}

func (r *animalRepo) ListByCategory(ctx context.Context, categoryID int64) ([]animals.Animal, error) {
	defer r.s.lock(ctx)()

	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if a.CategoryID == categoryID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *animalRepo) ListByShelter(ctx context.Context, shelterID int64) ([]animals.Animal, error) {
	defer r.s.lock(ctx)()

	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if a.ShelterID == shelterID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *animalRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.animals[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.animals, id)
	return nil
}
