package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/ports/storage"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("category not found")
	ErrShelterNotFound = errors.New("shelter not found")
	ErrAlreadyExists   = errors.New("category already exists")
	ErrSentinel        = errors.New("unset category cannot be deleted")
)

// ShelterDirectory evita acoplar este paquete a shelters (shelters ya
// importa categories para su cascada). Lo implementa shelters.Service.
type ShelterDirectory interface {
	Exists(ctx context.Context, shelterID int64) (bool, error)
}

type Service struct {
	repo     Repository
	shelters ShelterDirectory
	animals  animals.Repository
	requests adoptions.Repository
	atomic   storage.Atomic
	now      func() time.Time
}

func NewService(repo Repository, shelters ShelterDirectory, animalsRepo animals.Repository, requests adoptions.Repository, atomic storage.Atomic) *Service {
	return &Service{
		repo:     repo,
		shelters: shelters,
		animals:  animalsRepo,
		requests: requests,
		atomic:   atomic,
		now:      time.Now,
	}
}

// Add crea la categoría. Unicidad de nombre case-insensitive por shelter.
func (s *Service) Add(ctx context.Context, shelterID int64, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || shelterID <= 0 {
		return Category{}, ErrInvalidInput
	}

	ok, err := s.shelters.Exists(ctx, shelterID)
	if err != nil {
		return Category{}, err
	}
	if !ok {
		return Category{}, ErrShelterNotFound
	}

	if _, err := s.repo.GetByName(ctx, shelterID, name); err == nil {
		return Category{}, ErrAlreadyExists
	}

	c := Category{
		ShelterID: shelterID,
		Name:      name,
		CreatedAt: s.now(),
	}
	return s.repo.Create(ctx, c)
}

// Rename cambia el nombre respetando la unicidad por shelter.
func (s *Service) Rename(ctx context.Context, categoryID int64, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID <= 0 {
		return Category{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return Category{}, ErrNotFound
	}
	if c.Unset {
		return Category{}, ErrSentinel
	}

	if existing, err := s.repo.GetByName(ctx, c.ShelterID, name); err == nil && existing.ID != c.ID {
		return Category{}, ErrAlreadyExists
	}

	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Delete borra la categoría y resuelve sus animales: los adoptados se
// mudan a la categoría Unset del shelter, el resto se borra junto con
// sus solicitudes. Devuelve la cantidad de filas afectadas.
func (s *Service) Delete(ctx context.Context, categoryID int64) (int, error) {
	if categoryID <= 0 {
		return 0, ErrInvalidInput
	}

	affected := 0
	err := s.atomic.Atomic(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, categoryID)
		if err != nil {
			return ErrNotFound
		}
		if c.Unset {
			return ErrSentinel
		}

		unset, err := s.repo.GetUnset(ctx, c.ShelterID)
		if err != nil {
			return err
		}

		list, err := s.animals.ListByCategory(ctx, c.ID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, a := range list {
			if a.State == animals.StateAdopted {
				a.CategoryID = unset.ID
				a.UpdatedAt = now
				if err := s.animals.Update(ctx, a); err != nil {
					return err
				}
				affected++
				continue
			}

			n, err := s.requests.DeleteByAnimal(ctx, a.ID)
			if err != nil {
				return err
			}
			affected += n

			if err := s.animals.Delete(ctx, a.ID); err != nil {
				return err
			}
			affected++
		}

		if err := s.repo.Delete(ctx, c.ID); err != nil {
			return err
		}
		affected++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID int64) ([]Category, error) {
	if shelterID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}

// ShelterOf implementa animals.CategoryDirectory.
func (s *Service) ShelterOf(ctx context.Context, categoryID int64) (int64, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return 0, ErrNotFound
	}
	return c.ShelterID, nil
}
