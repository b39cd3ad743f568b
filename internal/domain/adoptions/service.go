package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/interviews"
	"pet-shelter-platform/internal/platform/metrics"
	"pet-shelter-platform/internal/ports/storage"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("request not found")
	ErrAnimalNotFound   = errors.New("animal not found")
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrBadState         = errors.New("invalid state transition")
	ErrSchedulingFailed = errors.New("interview scheduling failed")
)

// Scheduler es la cara del scheduler de entrevistas que necesita el
// approve. Lo implementa interviews.Service.
type Scheduler interface {
	Schedule(ctx context.Context, requestID int64, requestDate time.Time) (interviews.Interview, error)
}

type Service struct {
	repo      Repository
	animals   animals.Repository
	scheduler Scheduler
	atomic    storage.Atomic
	now       func() time.Time
}

func NewService(repo Repository, animalsRepo animals.Repository, scheduler Scheduler, atomic storage.Atomic) *Service {
	return &Service{
		repo:      repo,
		animals:   animalsRepo,
		scheduler: scheduler,
		atomic:    atomic,
		now:       time.Now,
	}
}

// Submit crea la solicitud en pending. Un par (animal, adoptante) con
// solicitud previa en cualquier estado bloquea el re-envío.
func (s *Service) Submit(ctx context.Context, animalID, adopterID int64) (Request, error) {
	if animalID <= 0 || adopterID <= 0 {
		return Request{}, ErrInvalidInput
	}

	var created Request
	err := s.atomic.Atomic(ctx, func(ctx context.Context) error {
		a, err := s.animals.GetByID(ctx, animalID)
		if err != nil {
			return ErrAnimalNotFound
		}

		if _, err := s.repo.GetByPair(ctx, animalID, adopterID); err == nil {
			return ErrDuplicateRequest
		}

		rq := Request{
			Reference:   uuid.NewString(),
			AnimalID:    animalID,
			AdopterID:   adopterID,
			ShelterID:   a.ShelterID,
			Status:      StatusPending,
			RequestDate: s.now(),
		}
		created, err = s.repo.Create(ctx, rq)
		return err
	})
	if err != nil {
		return Request{}, err
	}
	return created, nil
}

// Approve cierra la competencia por el animal: la solicitud elegida
// gana, toda otra solicitud del mismo animal queda rechazada, el
// animal pasa a adopted y se agenda la entrevista. Todo en una
// transacción: si el agendado falla, la aprobación se revierte.
func (s *Service) Approve(ctx context.Context, requestID int64) (Request, error) {
	if requestID <= 0 {
		return Request{}, ErrInvalidInput
	}

	var approved Request
	err := s.atomic.Atomic(ctx, func(ctx context.Context) error {
		rq, err := s.repo.GetByID(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		if rq.Status != StatusPending {
			return ErrBadState
		}

		// lock de fila sobre el animal: serializa approves
		// concurrentes de solicitudes hermanas
		a, err := s.animals.GetForUpdate(ctx, rq.AnimalID)
		if err != nil {
			return ErrAnimalNotFound
		}

		if err := s.rejectSiblings(ctx, rq); err != nil {
			return err
		}

		now := s.now()
		rq.Status = StatusApproved
		rq.ApprovedAt = &now
		if err := s.repo.Update(ctx, rq); err != nil {
			return err
		}

		a.State = animals.StateAdopted
		a.UpdatedAt = now
		if err := s.animals.Update(ctx, a); err != nil {
			return err
		}

		if _, err := s.scheduler.Schedule(ctx, rq.ID, rq.RequestDate); err != nil {
			return fmt.Errorf("%w: %v", ErrSchedulingFailed, err)
		}

		approved = rq
		return nil
	})
	if err != nil {
		return Request{}, err
	}

	metrics.AdoptionsApproved.Inc()
	return approved, nil
}

// Reject es el rechazo explícito de staff.
func (s *Service) Reject(ctx context.Context, requestID int64) (Request, error) {
	return s.terminate(ctx, requestID)
}

// Cancel es la baja por parte del adoptante; mismo estado terminal
// que el rechazo.
func (s *Service) Cancel(ctx context.Context, requestID int64) (Request, error) {
	return s.terminate(ctx, requestID)
}

func (s *Service) terminate(ctx context.Context, requestID int64) (Request, error) {
	if requestID <= 0 {
		return Request{}, ErrInvalidInput
	}

	rq, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return Request{}, ErrNotFound
	}
	if rq.Status == StatusRejected {
		return rq, nil // idempotente
	}
	if rq.Status == StatusApproved {
		return Request{}, ErrBadState
	}

	rq.Status = StatusRejected
	if err := s.repo.Update(ctx, rq); err != nil {
		return Request{}, err
	}
	return rq, nil
}

func (s *Service) rejectSiblings(ctx context.Context, winner Request) error {
	siblings, err := s.repo.ListByAnimal(ctx, winner.AnimalID)
	if err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.ID == winner.ID || sib.Status == StatusRejected {
			continue
		}
		sib.Status = StatusRejected
		if err := s.repo.Update(ctx, sib); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Request, error) {
	rq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Request{}, ErrNotFound
	}
	return rq, nil
}

// Track resuelve por el código público de seguimiento.
func (s *Service) Track(ctx context.Context, reference string) (Request, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return Request{}, ErrInvalidInput
	}
	rq, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return Request{}, ErrNotFound
	}
	return rq, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID int64) ([]Request, error) {
	if animalID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) ListByAdopter(ctx context.Context, adopterID int64) ([]Request, error) {
	if adopterID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAdopter(ctx, adopterID)
}
