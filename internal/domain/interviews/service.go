package interviews

import (
	"context"
	"errors"
	"time"

	"pet-shelter-platform/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("interview not found")
)

const (
	// días mínimos entre solicitud y entrevista
	leadDays = 5
	// umbral por día: se agenda mientras count <= dailyCap, o sea
	// caben hasta dailyCap+1 entrevistas antes de pasar al día
	// siguiente. Comportamiento heredado; no cambiar sin aviso.
	dailyCap = 5
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Schedule agenda la entrevista de una solicitud recién aprobada.
// Corre dentro de la transacción del approve: el caller ya resolvió
// la solicitud y nos pasa su RequestDate.
func (s *Service) Schedule(ctx context.Context, requestID int64, requestDate time.Time) (Interview, error) {
	if requestID <= 0 || requestDate.IsZero() {
		return Interview{}, ErrInvalidInput
	}

	if err := s.repo.LockSchedule(ctx); err != nil {
		return Interview{}, err
	}

	slot, err := s.findSlot(ctx, requestDate)
	if err != nil {
		return Interview{}, err
	}

	iv := Interview{
		RequestID:   requestID,
		ScheduledAt: slot,
		CreatedAt:   s.now(),
	}
	created, err := s.repo.Create(ctx, iv)
	if err != nil {
		return Interview{}, err
	}

	metrics.InterviewsScheduled.Inc()
	return created, nil
}

// findSlot: primer día >= requestDate+leadDays con cupo.
func (s *Service) findSlot(ctx context.Context, requestDate time.Time) (time.Time, error) {
	candidate := Day(requestDate).AddDate(0, 0, leadDays)
	for {
		n, err := s.repo.CountByDate(ctx, candidate)
		if err != nil {
			return time.Time{}, err
		}
		if n <= dailyCap {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
}

func (s *Service) GetByRequest(ctx context.Context, requestID int64) (Interview, error) {
	iv, err := s.repo.GetByRequest(ctx, requestID)
	if err != nil {
		return Interview{}, ErrNotFound
	}
	return iv, nil
}

func (s *Service) ListByDate(ctx context.Context, day time.Time) ([]Interview, error) {
	if day.IsZero() {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDate(ctx, Day(day))
}

// Day trunca a fecha pura en UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
