package staffing

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byUser map[int64]Staff
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[int64]Staff{}}
}

func (r *testRepo) Create(ctx context.Context, st Staff) (Staff, error) {
	if _, ok := r.byUser[st.UserID]; ok {
		return Staff{}, errors.New("repo: duplicate")
	}
	r.byUser[st.UserID] = st
	return st, nil
}

func (r *testRepo) Update(ctx context.Context, st Staff) error {
	if _, ok := r.byUser[st.UserID]; !ok {
		return errors.New("repo: not found")
	}
	r.byUser[st.UserID] = st
	return nil
}

func (r *testRepo) GetByUser(ctx context.Context, userID int64) (Staff, error) {
	st, ok := r.byUser[userID]
	if !ok {
		return Staff{}, errors.New("repo: not found")
	}
	return st, nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID int64) ([]Staff, error) {
	out := make([]Staff, 0)
	for _, st := range r.byUser {
		if st.ShelterID == shelterID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteByShelter(ctx context.Context, shelterID int64) (int, error) {
	n := 0
	for id, st := range r.byUser {
		if st.ShelterID == shelterID {
			delete(r.byUser, id)
			n++
		}
	}
	return n, nil
}

const unassignedID = int64(2)

type testDirectory struct {
	shelters map[int64]bool
}

func newTestDirectory(ids ...int64) *testDirectory {
	m := map[int64]bool{unassignedID: true}
	for _, id := range ids {
		m[id] = true
	}
	return &testDirectory{shelters: m}
}

func (d *testDirectory) Exists(ctx context.Context, shelterID int64) (bool, error) {
	return d.shelters[shelterID], nil
}

func (d *testDirectory) UnassignedID(ctx context.Context) (int64, error) {
	return unassignedID, nil
}

// -------------------------
// Tests
// -------------------------

func TestRegister_ParksAtUnassigned(t *testing.T) {
	svc := NewService(newTestRepo(), newTestDirectory())

	st, err := svc.Register(context.Background(), RegisterInput{UserID: 7, Type: TypeCaretaker})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if st.ShelterID != unassignedID {
		t.Fatalf("expected staff parked at %d, got %d", unassignedID, st.ShelterID)
	}
	if !st.HireDate.IsZero() {
		t.Fatalf("expected zero HireDate before assignment, got %v", st.HireDate)
	}
}

func TestRegister_DuplicateAndBadType(t *testing.T) {
	svc := NewService(newTestRepo(), newTestDirectory())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{UserID: 7, Type: TypeVeterinarian}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{UserID: 7, Type: TypeVeterinarian}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{UserID: 8, Type: StaffType("janitor")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad type, got %v", err)
	}
}

func TestAssign_MovesAndStampsHireDate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestDirectory(10))
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{UserID: 7, Type: TypeCoordinator}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	moved, err := svc.Assign(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if moved != 1 {
		t.Fatalf("expected 1 moved, got %d", moved)
	}

	st, _ := repo.GetByUser(ctx, 7)
	if st.ShelterID != 10 || st.HireDate.IsZero() {
		t.Fatalf("assignment not applied: %+v", st)
	}

	// re-asignar al mismo shelter es no-op
	moved, err = svc.Assign(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Assign #2: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected no-op, got %d moved", moved)
	}
}

func TestAssign_Errors(t *testing.T) {
	svc := NewService(newTestRepo(), newTestDirectory(10))
	ctx := context.Background()

	if _, err := svc.Assign(ctx, 7, 999); !errors.Is(err, ErrShelterNotFound) {
		t.Fatalf("expected ErrShelterNotFound, got %v", err)
	}
	if _, err := svc.Assign(ctx, 7, 10); !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestUnassignAll_MovesOnlyAssigned(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestDirectory(10))
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if _, err := svc.Register(ctx, RegisterInput{UserID: id, Type: TypeCaretaker}); err != nil {
			t.Fatalf("Register %d: %v", id, err)
		}
	}
	// dos asignados, uno queda estacionado
	if _, err := svc.Assign(ctx, 1, 10); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := svc.Assign(ctx, 2, 10); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	moved, err := svc.UnassignAll(ctx, 10)
	if err != nil {
		t.Fatalf("UnassignAll: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 moved, got %d", moved)
	}

	left, _ := repo.ListByShelter(ctx, 10)
	if len(left) != 0 {
		t.Fatalf("staff still assigned after UnassignAll: %d", len(left))
	}
	parked, _ := repo.ListByShelter(ctx, unassignedID)
	if len(parked) != 3 {
		t.Fatalf("expected 3 parked, got %d", len(parked))
	}
}

func TestUnassign_NoopWhenParked(t *testing.T) {
	svc := NewService(newTestRepo(), newTestDirectory())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{UserID: 7, Type: TypeCaretaker}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	moved, err := svc.Unassign(ctx, 7)
	if err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected no-op, got %d moved", moved)
	}
}
