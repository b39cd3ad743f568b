package memory

import (
	"context"
	"errors"
	"sort"

	"pet-shelter-platform/internal/domain/staffing"
)

type staffRepo struct {
	s *Store
}

func (r *staffRepo) Create(ctx context.Context, st staffing.Staff) (staffing.Staff, error) {
	defer r.s.lock(ctx)()

	if st.UserID <= 0 {
		return staffing.Staff{}, errors.New("staff user id required")
	}
	if _, ok := r.s.staff[st.UserID]; ok {
		return staffing.Staff{}, errors.New("staff already exists")
	}
	r.s.staff[st.UserID] = st
	return st, nil
}

func (r *staffRepo) Update(ctx context.Context, st staffing.Staff) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.staff[st.UserID]; !ok {
		return ErrNotFound
	}
	r.s.staff[st.UserID] = st
	return nil
}

func (r *staffRepo) GetByUser(ctx context.Context, userID int64) (staffing.Staff, error) {
	defer r.s.lock(ctx)()

	st, ok := r.s.staff[userID]
	if !ok {
		return staffing.Staff{}, ErrNotFound
	}
	return st, nil
}

func (r *staffRepo) ListByShelter(ctx context.Context, shelterID int64) ([]staffing.Staff, error) {
	defer r.s.lock(ctx)()

	out := make([]staffing.Staff, 0)
	for _, st := range r.s.staff {
		if st.ShelterID == shelterID {
			out = append(out, st)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *staffRepo) DeleteByShelter(ctx context.Context, shelterID int64) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for id, st := range r.s.staff {
		if st.ShelterID == shelterID {
			delete(r.s.staff, id)
			n++
		}
	}
	return n, nil
}
