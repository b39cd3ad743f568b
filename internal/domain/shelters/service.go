package shelters

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/categories"
	"pet-shelter-platform/internal/domain/staffing"
	"pet-shelter-platform/internal/platform/metrics"
	"pet-shelter-platform/internal/ports/storage"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("shelter not found")
	ErrAlreadyExists = errors.New("shelter already exists")
	ErrSentinel      = errors.New("sentinel shelter cannot be deleted")
)

const unsetCategoryName = "Unset"

type Service struct {
	repo       Repository
	categories categories.Repository
	animals    animals.Repository
	requests   adoptions.Repository
	staff      staffing.Repository
	atomic     storage.Atomic
	now        func() time.Time
}

func NewService(repo Repository, cats categories.Repository, animalsRepo animals.Repository, requests adoptions.Repository, staff staffing.Repository, atomic storage.Atomic) *Service {
	return &Service{
		repo:       repo,
		categories: cats,
		animals:    animalsRepo,
		requests:   requests,
		staff:      staff,
		atomic:     atomic,
		now:        time.Now,
	}
}

// EnsureSentinels crea Deleted y Unassigned (con su categoría Unset)
// si faltan. Se llama al bootstrap; es idempotente.
func (s *Service) EnsureSentinels(ctx context.Context) error {
	return s.atomic.Atomic(ctx, func(ctx context.Context) error {
		for _, k := range []Kind{KindDeleted, KindUnassigned} {
			if _, err := s.repo.GetByKind(ctx, k); err == nil {
				continue
			}

			now := s.now()
			sh, err := s.repo.Create(ctx, Shelter{
				Name:        sentinelName(k),
				Description: "parking sentinel",
				Kind:        k,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return err
			}

			_, err = s.categories.Create(ctx, categories.Category{
				ShelterID: sh.ID,
				Name:      unsetCategoryName,
				Unset:     true,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type AddInput struct {
	Name        string
	Location    string
	Phone       string
	Description string
}

// Add crea el shelter y, en la misma transacción, su categoría Unset.
func (s *Service) Add(ctx context.Context, in AddInput) (Shelter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Shelter{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Shelter{}, ErrAlreadyExists
	}

	var created Shelter
	err := s.atomic.Atomic(ctx, func(ctx context.Context) error {
		now := s.now()
		sh, err := s.repo.Create(ctx, Shelter{
			Name:        name,
			Location:    strings.TrimSpace(in.Location),
			Phone:       strings.TrimSpace(in.Phone),
			Description: strings.TrimSpace(in.Description),
			Kind:        KindRegular,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		_, err = s.categories.Create(ctx, categories.Category{
			ShelterID: sh.ID,
			Name:      sh.Name + "-" + unsetCategoryName,
			Unset:     true,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}

		created = sh
		return nil
	})
	if err != nil {
		return Shelter{}, err
	}
	return created, nil
}

// Delete ejecuta la cascada completa en una transacción:
//  1. animales adoptados se estacionan en Deleted (con su categoría
//     Unset) y sus solicitudes aprobadas los siguen; el resto de
//     solicitudes se borra
//  2. animales nunca adoptados se borran junto con sus solicitudes
//  3. categorías del shelter se borran en bloque (los animales ya
//     fueron reubicados, por eso acá no hay migración por animal)
//  4. staff del shelter se borra (no se estaciona; para eso está
//     staffing.UnassignAll)
//  5. se borra la fila del shelter
//
// Devuelve filas afectadas.
func (s *Service) Delete(ctx context.Context, shelterID int64) (int, error) {
	if shelterID <= 0 {
		return 0, ErrInvalidInput
	}

	affected := 0
	err := s.atomic.Atomic(ctx, func(ctx context.Context) error {
		sh, err := s.repo.GetByID(ctx, shelterID)
		if err != nil {
			return ErrNotFound
		}
		if sh.Sentinel() {
			return ErrSentinel
		}

		parking, err := s.repo.GetByKind(ctx, KindDeleted)
		if err != nil {
			return err
		}
		parkCat, err := s.categories.GetUnset(ctx, parking.ID)
		if err != nil {
			return err
		}

		list, err := s.animals.ListByShelter(ctx, sh.ID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, a := range list {
			if a.State == animals.StateAdopted {
				a.ShelterID = parking.ID
				a.CategoryID = parkCat.ID
				a.UpdatedAt = now
				if err := s.animals.Update(ctx, a); err != nil {
					return err
				}
				affected++

				n, err := s.relocateRequests(ctx, a.ID, parking.ID)
				if err != nil {
					return err
				}
				affected += n
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

		n, err := s.categories.DeleteAllForShelter(ctx, sh.ID)
		if err != nil {
			return err
		}
		affected += n

		n, err = s.staff.DeleteByShelter(ctx, sh.ID)
		if err != nil {
			return err
		}
		affected += n

		if err := s.repo.Delete(ctx, sh.ID); err != nil {
			return err
		}
		affected++
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.ShelterCascades.Inc()
	return affected, nil
}

// relocateRequests: las aprobadas siguen al animal al sentinel
// Deleted; el resto se borra.
func (s *Service) relocateRequests(ctx context.Context, animalID, parkingID int64) (int, error) {
	reqs, err := s.requests.ListByAnimal(ctx, animalID)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, rq := range reqs {
		if rq.Status == adoptions.StatusApproved {
			rq.ShelterID = parkingID
			if err := s.requests.Update(ctx, rq); err != nil {
				return n, err
			}
			n++
			continue
		}
		if err := s.requests.Delete(ctx, rq.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Shelter, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, ErrNotFound
	}
	return sh, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Shelter, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

// Exists implementa categories.ShelterDirectory y parte de
// staffing.ShelterDirectory.
func (s *Service) Exists(ctx context.Context, shelterID int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, shelterID)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// UnassignedID resuelve el sentinel Unassigned por registro.
func (s *Service) UnassignedID(ctx context.Context) (int64, error) {
	sh, err := s.repo.GetByKind(ctx, KindUnassigned)
	if err != nil {
		return 0, err
	}
	return sh.ID, nil
}

// UnsetCategoryOf resuelve la categoría Unset de un shelter; la usa
// el bootstrap de tests y queda como garantía de la propiedad "todo
// shelter tiene exactamente una Unset resoluble".
func (s *Service) UnsetCategoryOf(ctx context.Context, shelterID int64) (categories.Category, error) {
	return s.categories.GetUnset(ctx, shelterID)
}

func sentinelName(k Kind) string {
	switch k {
	case KindDeleted:
		return "Deleted"
	case KindUnassigned:
		return "Unassigned"
	default:
		return string(k)
	}
}
