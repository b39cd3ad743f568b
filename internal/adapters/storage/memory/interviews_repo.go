package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"pet-shelter-platform/internal/domain/interviews"
)

type interviewRepo struct {
	s *Store
}

func (r *interviewRepo) Create(ctx context.Context, iv interviews.Interview) (interviews.Interview, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.ivs {
		if existing.RequestID == iv.RequestID {
			return interviews.Interview{}, errors.New("request already has an interview")
		}
	}

	iv.ID = r.s.nextID()
	r.s.ivs[iv.ID] = iv
	return iv, nil
}

func (r *interviewRepo) GetByRequest(ctx context.Context, requestID int64) (interviews.Interview, error) {
	defer r.s.lock(ctx)()

	for _, iv := range r.s.ivs {
		if iv.RequestID == requestID {
			return iv, nil
		}
	}
	return interviews.Interview{}, ErrNotFound
}

func (r *interviewRepo) CountByDate(ctx context.Context, day time.Time) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, iv := range r.s.ivs {
		if iv.ScheduledAt.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (r *interviewRepo) ListByDate(ctx context.Context, day time.Time) ([]interviews.Interview, error) {
	defer r.s.lock(ctx)()

	out := make([]interviews.Interview, 0)
	for _, iv := range r.s.ivs {
		if iv.ScheduledAt.Equal(day) {
			out = append(out, iv)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LockSchedule: el mutex del store ya serializa el agendado.
func (r *interviewRepo) LockSchedule(ctx context.Context) error { return nil }
