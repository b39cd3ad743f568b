package adoptions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/interviews"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	seq  int64
	byID map[int64]Request
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Request{}}
}

func (r *testRepo) Create(ctx context.Context, rq Request) (Request, error) {
	r.seq++
	rq.ID = r.seq
	r.byID[rq.ID] = rq
	return rq, nil
}

func (r *testRepo) Update(ctx context.Context, rq Request) error {
	if _, ok := r.byID[rq.ID]; !ok {
		return errors.New("repo: not found")
	}
	r.byID[rq.ID] = rq
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Request, error) {
	rq, ok := r.byID[id]
	if !ok {
		return Request{}, errors.New("repo: not found")
	}
	return rq, nil
}

func (r *testRepo) GetByReference(ctx context.Context, reference string) (Request, error) {
	for _, rq := range r.byID {
		if rq.Reference == reference {
			return rq, nil
		}
	}
	return Request{}, errors.New("repo: not found")
}

func (r *testRepo) GetByPair(ctx context.Context, animalID, adopterID int64) (Request, error) {
	for _, rq := range r.byID {
		if rq.AnimalID == animalID && rq.AdopterID == adopterID {
			return rq, nil
		}
	}
	return Request{}, errors.New("repo: not found")
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID int64) ([]Request, error) {
	out := make([]Request, 0)
	for _, rq := range r.byID {
		if rq.AnimalID == animalID {
			out = append(out, rq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListByAdopter(ctx context.Context, adopterID int64) ([]Request, error) {
	out := make([]Request, 0)
	for _, rq := range r.byID {
		if rq.AdopterID == adopterID {
			out = append(out, rq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByAnimal(ctx context.Context, animalID int64) (int, error) {
	n := 0
	for id, rq := range r.byID {
		if rq.AnimalID == animalID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) { return len(r.byID), nil }

func (r *testRepo) CountApproved(ctx context.Context) (int, error) {
	n := 0
	for _, rq := range r.byID {
		if rq.Status == StatusApproved {
			n++
		}
	}
	return n, nil
}

func (r *testRepo) ListRecentApproved(ctx context.Context, limit int) ([]Request, error) {
	return nil, nil
}

type testAnimals struct {
	byID map[int64]animals.Animal
}

func newTestAnimals(list ...animals.Animal) *testAnimals {
	m := map[int64]animals.Animal{}
	for _, a := range list {
		m[a.ID] = a
	}
	return &testAnimals{byID: m}
}

func (r *testAnimals) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.byID[a.ID] = a
	return a, nil
}

func (r *testAnimals) Update(ctx context.Context, a animals.Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errors.New("repo: not found")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testAnimals) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, errors.New("repo: not found")
	}
	return a, nil
}

func (r *testAnimals) GetForUpdate(ctx context.Context, id int64) (animals.Animal, error) {
	return r.GetByID(ctx, id)
}

func (r *testAnimals) ListByCategory(ctx context.Context, categoryID int64) ([]animals.Animal, error) {
	return nil, nil
}

func (r *testAnimals) ListByShelter(ctx context.Context, shelterID int64) ([]animals.Animal, error) {
	return nil, nil
}

func (r *testAnimals) Delete(ctx context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

type testScheduler struct {
	fail  bool
	calls []int64
}

func (s *testScheduler) Schedule(ctx context.Context, requestID int64, requestDate time.Time) (interviews.Interview, error) {
	if s.fail {
		return interviews.Interview{}, errors.New("no slot")
	}
	s.calls = append(s.calls, requestID)
	return interviews.Interview{ID: 1, RequestID: requestID, ScheduledAt: requestDate.AddDate(0, 0, 5)}, nil
}

// passthrough: acá no testeamos rollback, solo la lógica de estados
type testAtomic struct{}

func (testAtomic) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *testRepo, ar *testAnimals, sch *testScheduler) *Service {
	return NewService(repo, ar, sch, testAtomic{})
}

// -------------------------
// Tests
// -------------------------

func TestSubmit_SetsReferenceAndShelter(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42, State: animals.StatePending})
	svc := newTestService(repo, ar, &testScheduler{})

	rq, err := svc.Submit(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rq.Status != StatusPending {
		t.Fatalf("expected pending, got %s", rq.Status)
	}
	if rq.Reference == "" {
		t.Fatal("expected non-empty tracking reference")
	}
	if rq.ShelterID != 42 {
		t.Fatalf("expected shelter 42 from animal, got %d", rq.ShelterID)
	}
}

func TestSubmit_DuplicatePairBlocked(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42})
	svc := newTestService(repo, ar, &testScheduler{})
	ctx := context.Background()

	first, err := svc.Submit(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// re-envío del mismo par: bloqueado incluso tras el rechazo
	if _, err := svc.Submit(ctx, 1, 10); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	if _, err := svc.Reject(ctx, first.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := svc.Submit(ctx, 1, 10); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest after reject, got %v", err)
	}

	// otro adoptante por el mismo animal: permitido
	if _, err := svc.Submit(ctx, 1, 11); err != nil {
		t.Fatalf("Submit other adopter: %v", err)
	}
}

func TestSubmit_UnknownAnimal(t *testing.T) {
	svc := newTestService(newTestRepo(), newTestAnimals(), &testScheduler{})

	if _, err := svc.Submit(context.Background(), 5, 10); !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestApprove_SingleWinnerRejectsSiblings(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42, State: animals.StatePending})
	sch := &testScheduler{}
	svc := newTestService(repo, ar, sch)
	ctx := context.Background()

	a, _ := svc.Submit(ctx, 1, 10)
	b, _ := svc.Submit(ctx, 1, 11)
	c, _ := svc.Submit(ctx, 1, 12)

	won, err := svc.Approve(ctx, b.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if won.Status != StatusApproved || won.ApprovedAt == nil {
		t.Fatalf("winner not approved: %+v", won)
	}

	for _, id := range []int64{a.ID, c.ID} {
		sib, _ := repo.GetByID(ctx, id)
		if sib.Status != StatusRejected {
			t.Fatalf("sibling %d not rejected: %s", id, sib.Status)
		}
	}

	got, _ := ar.GetByID(ctx, 1)
	if got.State != animals.StateAdopted {
		t.Fatalf("animal not adopted: %s", got.State)
	}

	if len(sch.calls) != 1 || sch.calls[0] != b.ID {
		t.Fatalf("expected one schedule call for %d, got %v", b.ID, sch.calls)
	}

	// segunda aprobación sobre una hermana ya rechazada
	if _, err := svc.Approve(ctx, a.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestApprove_SchedulingFailure(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42})
	svc := newTestService(repo, ar, &testScheduler{fail: true})
	ctx := context.Background()

	rq, _ := svc.Submit(ctx, 1, 10)
	if _, err := svc.Approve(ctx, rq.ID); !errors.Is(err, ErrSchedulingFailed) {
		t.Fatalf("expected ErrSchedulingFailed, got %v", err)
	}
}

func TestCancel_MissingRequest(t *testing.T) {
	svc := newTestService(newTestRepo(), newTestAnimals(), &testScheduler{})

	if _, err := svc.Cancel(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectAndCancel_TerminalRules(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42})
	svc := newTestService(repo, ar, &testScheduler{})
	ctx := context.Background()

	rq, _ := svc.Submit(ctx, 1, 10)

	// rechazo idempotente
	if _, err := svc.Reject(ctx, rq.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := svc.Cancel(ctx, rq.ID); err != nil {
		t.Fatalf("Cancel over rejected should be a no-op: %v", err)
	}

	// una aprobada no se cancela
	rq2, _ := svc.Submit(ctx, 1, 11)
	if _, err := svc.Approve(ctx, rq2.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := svc.Cancel(ctx, rq2.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState cancelling approved, got %v", err)
	}
}

func TestTrack_ByReference(t *testing.T) {
	repo := newTestRepo()
	ar := newTestAnimals(animals.Animal{ID: 1, ShelterID: 42})
	svc := newTestService(repo, ar, &testScheduler{})
	ctx := context.Background()

	rq, _ := svc.Submit(ctx, 1, 10)

	got, err := svc.Track(ctx, rq.Reference)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if got.ID != rq.ID {
		t.Fatalf("expected request %d, got %d", rq.ID, got.ID)
	}

	if _, err := svc.Track(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Track(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
