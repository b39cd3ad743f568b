package staffing

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrStaffNotFound   = errors.New("staff not found")
	ErrShelterNotFound = errors.New("shelter not found")
	ErrAlreadyExists   = errors.New("staff already exists")
)

// ShelterDirectory resuelve shelters sin importar el paquete shelters
// (shelters usa este repo en su cascada). Lo implementa shelters.Service.
type ShelterDirectory interface {
	Exists(ctx context.Context, shelterID int64) (bool, error)
	// UnassignedID devuelve el sentinel resuelto por registro, nunca
	// una constante mágica.
	UnassignedID(ctx context.Context) (int64, error)
}

type Service struct {
	repo     Repository
	shelters ShelterDirectory
	now      func() time.Time
}

func NewService(repo Repository, shelters ShelterDirectory) *Service {
	return &Service{
		repo:     repo,
		shelters: shelters,
		now:      time.Now,
	}
}

type RegisterInput struct {
	UserID int64
	Phone  string
	Type   StaffType
}

// Register da de alta la fila staff estacionada en Unassigned.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Staff, error) {
	if in.UserID <= 0 {
		return Staff{}, ErrInvalidInput
	}
	switch in.Type {
	case TypeCaretaker, TypeVeterinarian, TypeCoordinator:
	default:
		return Staff{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByUser(ctx, in.UserID); err == nil {
		return Staff{}, ErrAlreadyExists
	}

	parkedAt, err := s.shelters.UnassignedID(ctx)
	if err != nil {
		return Staff{}, err
	}

	st := Staff{
		UserID:    in.UserID,
		Phone:     strings.TrimSpace(in.Phone),
		Type:      in.Type,
		ShelterID: parkedAt,
		CreatedAt: s.now(),
	}
	return s.repo.Create(ctx, st)
}

// Assign mueve al staff al shelter destino y estampa HireDate.
// Devuelve filas cambiadas (0 si ya estaba ahí).
func (s *Service) Assign(ctx context.Context, staffID, shelterID int64) (int, error) {
	if staffID <= 0 || shelterID <= 0 {
		return 0, ErrInvalidInput
	}

	ok, err := s.shelters.Exists(ctx, shelterID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrShelterNotFound
	}

	st, err := s.repo.GetByUser(ctx, staffID)
	if err != nil {
		return 0, ErrStaffNotFound
	}
	if st.ShelterID == shelterID {
		return 0, nil
	}

	st.ShelterID = shelterID
	st.HireDate = s.now()
	if err := s.repo.Update(ctx, st); err != nil {
		return 0, err
	}
	return 1, nil
}

// Unassign estaciona a un staff en Unassigned sin borrar la fila.
func (s *Service) Unassign(ctx context.Context, staffID int64) (int, error) {
	if staffID <= 0 {
		return 0, ErrInvalidInput
	}

	st, err := s.repo.GetByUser(ctx, staffID)
	if err != nil {
		return 0, ErrStaffNotFound
	}

	parkedAt, err := s.shelters.UnassignedID(ctx)
	if err != nil {
		return 0, err
	}
	if st.ShelterID == parkedAt {
		return 0, nil
	}

	st.ShelterID = parkedAt
	if err := s.repo.Update(ctx, st); err != nil {
		return 0, err
	}
	return 1, nil
}

// UnassignAll libera a todo el staff de un shelter sin destruirlo.
// Camino distinto al paso 4 de la cascada, que sí borra filas.
func (s *Service) UnassignAll(ctx context.Context, shelterID int64) (int, error) {
	if shelterID <= 0 {
		return 0, ErrInvalidInput
	}

	ok, err := s.shelters.Exists(ctx, shelterID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrShelterNotFound
	}

	parkedAt, err := s.shelters.UnassignedID(ctx)
	if err != nil {
		return 0, err
	}

	list, err := s.repo.ListByShelter(ctx, shelterID)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, st := range list {
		if st.ShelterID == parkedAt {
			continue
		}
		st.ShelterID = parkedAt
		if err := s.repo.Update(ctx, st); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

func (s *Service) GetByUser(ctx context.Context, userID int64) (Staff, error) {
	st, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Staff{}, ErrStaffNotFound
	}
	return st, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID int64) ([]Staff, error) {
	if shelterID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}
