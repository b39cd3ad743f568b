package memory

import (
	"context"
	"errors"
	"sync"

	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/categories"
	"pet-shelter-platform/internal/domain/interviews"
	"pet-shelter-platform/internal/domain/shelters"
	"pet-shelter-platform/internal/domain/staffing"
	"pet-shelter-platform/internal/domain/users"
)

var ErrNotFound = errors.New("not found")

type txKey struct{}

// Store agrupa todas las tablas in-memory detrás de un mutex único.
// Atomic serializa: dentro de la unidad no hay rollback (store de
// dev/tests; la atomicidad real la da el adapter postgres).
type Store struct {
	mu  sync.Mutex
	seq int64

	shelters  map[int64]shelters.Shelter
	cats      map[int64]categories.Category
	animals   map[int64]animals.Animal
	requests  map[int64]adoptions.Request
	ivs       map[int64]interviews.Interview
	staff     map[int64]staffing.Staff
	users     map[int64]users.User
}

func NewStore() *Store {
	return &Store{
		shelters: make(map[int64]shelters.Shelter),
		cats:     make(map[int64]categories.Category),
		animals:  make(map[int64]animals.Animal),
		requests: make(map[int64]adoptions.Request),
		ivs:      make(map[int64]interviews.Interview),
		staff:    make(map[int64]staffing.Staff),
		users:    make(map[int64]users.User),
	}
}

// Atomic toma el mutex del store y marca el ctx para que las llamadas
// anidadas a repos no intenten tomarlo de nuevo.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

// lock devuelve el unlock a diferir; no-op si ya estamos dentro de
// una unidad Atomic.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Shelters() shelters.Repository     { return &shelterRepo{s} }
func (s *Store) Categories() categories.Repository { return &categoryRepo{s} }
func (s *Store) Animals() animals.Repository       { return &animalRepo{s} }
func (s *Store) Adoptions() adoptions.Repository   { return &adoptionRepo{s} }
func (s *Store) Interviews() interviews.Repository { return &interviewRepo{s} }
func (s *Store) Staffing() staffing.Repository     { return &staffRepo{s} }
func (s *Store) Users() users.Repository           { return &userRepo{s} }
