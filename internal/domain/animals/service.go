package animals

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("animal not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryDirectory resuelve el shelter dueño de una categoría.
// Lo implementa categories.Service; la interfaz vive acá para no
// acoplar el paquete a categories.
type CategoryDirectory interface {
	ShelterOf(ctx context.Context, categoryID int64) (int64, error)
}

type Service struct {
	repo       Repository
	categories CategoryDirectory
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryDirectory) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

type CreateInput struct {
	Name              string
	Breed             string
	Age               int
	MedicationHistory string
	CategoryID        int64
}

// Create es el alta por staff: el animal nace directamente en pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID <= 0 || in.Age < 0 {
		return Animal{}, ErrInvalidInput
	}

	shelterID, err := s.categories.ShelterOf(ctx, in.CategoryID)
	if err != nil {
		return Animal{}, ErrCategoryNotFound
	}

	now := s.now()
	a := Animal{
		Name:              name,
		Breed:             strings.TrimSpace(in.Breed),
		Age:               in.Age,
		MedicationHistory: strings.TrimSpace(in.MedicationHistory),
		State:             StatePending,
		CategoryID:        in.CategoryID,
		ShelterID:         shelterID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID int64) ([]Animal, error) {
	if shelterID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Animal, error) {
	if categoryID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCategory(ctx, categoryID)
}
