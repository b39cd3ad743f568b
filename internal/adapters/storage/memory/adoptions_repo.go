package memory

import (
	"context"
	"sort"

	"pet-shelter-platform/internal/domain/adoptions"
)

type adoptionRepo struct {
	s *Store
}

func (r *adoptionRepo) Create(ctx context.Context, rq adoptions.Request) (adoptions.Request, error) {
	defer r.s.lock(ctx)()

	rq.ID = r.s.nextID()
	r.s.requests[rq.ID] = rq
	return rq, nil
}

func (r *adoptionRepo) Update(ctx context.Context, rq adoptions.Request) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.requests[rq.ID]; !ok {
		return ErrNotFound
	}
	r.s.requests[rq.ID] = rq
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id int64) (adoptions.Request, error) {
	defer r.s.lock(ctx)()

	rq, ok := r.s.requests[id]
	if !ok {
		return adoptions.Request{}, ErrNotFound
	}
	return rq, nil
}

func (r *adoptionRepo) GetByReference(ctx context.Context, reference string) (adoptions.Request, error) {
	defer r.s.lock(ctx)()

	for _, rq := range r.s.requests {
		if rq.Reference == reference {
			return rq, nil
		}
	}
	return adoptions.Request{}, ErrNotFound
}

func (r *adoptionRepo) GetByPair(ctx context.Context, animalID, adopterID int64) (adoptions.Request, error) {
	defer r.s.lock(ctx)()

	for _, rq := range r.s.requests {
		if rq.AnimalID == animalID && rq.AdopterID == adopterID {
			return rq, nil
		}
	}
	return adoptions.Request{}, ErrNotFound
}

func (r *adoptionRepo) ListByAnimal(ctx context.Context, animalID int64) ([]adoptions.Request, error) {
	defer r.s.lock(ctx)()

	out := make([]adoptions.Request, 0)
	for _, rq := range r.s.requests {
		if rq.AnimalID == animalID {
			out = append(out, rq)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *adoptionRepo) ListByAdopter(ctx context.Context, adopterID int64) ([]adoptions.Request, error) {
	defer r.s.lock(ctx)()

	out := make([]adoptions.Request, 0)
	for _, rq := range r.s.requests {
		if rq.AdopterID == adopterID {
			out = append(out, rq)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *adoptionRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.requests[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.requests, id)
	r.dropInterviews(id)
	return nil
}

func (r *adoptionRepo) DeleteByAnimal(ctx context.Context, animalID int64) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for id, rq := range r.s.requests {
		if rq.AnimalID == animalID {
			delete(r.s.requests, id)
			r.dropInterviews(id)
			n++
		}
	}
	return n, nil
}

// dropInterviews emula el ON DELETE CASCADE del schema postgres.
// Llamar con el lock tomado.
func (r *adoptionRepo) dropInterviews(requestID int64) {
	for id, iv := range r.s.ivs {
		if iv.RequestID == requestID {
			delete(r.s.ivs, id)
		}
	}
}

func (r *adoptionRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.requests), nil
}

func (r *adoptionRepo) CountApproved(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, rq := range r.s.requests {
		if rq.Status == adoptions.StatusApproved {
			n++
		}
	}
	return n, nil
}

func (r *adoptionRepo) ListRecentApproved(ctx context.Context, limit int) ([]adoptions.Request, error) {
	defer r.s.lock(ctx)()

	out := make([]adoptions.Request, 0)
	for _, rq := range r.s.requests {
		if rq.Status == adoptions.StatusApproved && rq.ApprovedAt != nil {
			out = append(out, rq)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ApprovedAt.After(*out[j].ApprovedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
