package categories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "pet-shelter-platform/internal/adapters/storage/memory"
	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/categories"
	"pet-shelter-platform/internal/domain/shelters"
)

func newHarness(t *testing.T) (*mem.Store, *shelters.Service, *categories.Service) {
	t.Helper()

	store := mem.NewStore()
	sheltersSvc := shelters.NewService(
		store.Shelters(),
		store.Categories(),
		store.Animals(),
		store.Adoptions(),
		store.Staffing(),
		store,
	)
	if err := sheltersSvc.EnsureSentinels(context.Background()); err != nil {
		t.Fatalf("EnsureSentinels: %v", err)
	}
	svc := categories.NewService(store.Categories(), sheltersSvc, store.Animals(), store.Adoptions(), store)
	return store, sheltersSvc, svc
}

func TestAdd_NameScopedPerShelter(t *testing.T) {
	_, sheltersSvc, svc := newHarness(t)
	ctx := context.Background()

	a, err := sheltersSvc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add shelter: %v", err)
	}
	b, err := sheltersSvc.Add(ctx, shelters.AddInput{Name: "Sur"})
	if err != nil {
		t.Fatalf("Add shelter: %v", err)
	}

	if _, err := svc.Add(ctx, a.ID, "Perros"); err != nil {
		t.Fatalf("Add category: %v", err)
	}
	// mismo nombre en otro shelter: permitido
	if _, err := svc.Add(ctx, b.ID, "Perros"); err != nil {
		t.Fatalf("same name on another shelter should pass: %v", err)
	}
	// duplicado en el mismo shelter, case-insensitive: rechazado
	if _, err := svc.Add(ctx, a.ID, "perros"); !errors.Is(err, categories.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAdd_UnknownShelter(t *testing.T) {
	_, _, svc := newHarness(t)

	if _, err := svc.Add(context.Background(), 9999, "Perros"); !errors.Is(err, categories.ErrShelterNotFound) {
		t.Fatalf("expected ErrShelterNotFound, got %v", err)
	}
}

func TestRename_UnsetGuardAndUniqueness(t *testing.T) {
	_, sheltersSvc, svc := newHarness(t)
	ctx := context.Background()

	sh, err := sheltersSvc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add shelter: %v", err)
	}
	unset, err := sheltersSvc.UnsetCategoryOf(ctx, sh.ID)
	if err != nil {
		t.Fatalf("UnsetCategoryOf: %v", err)
	}

	if _, err := svc.Rename(ctx, unset.ID, "Otra"); !errors.Is(err, categories.ErrSentinel) {
		t.Fatalf("expected ErrSentinel renaming unset, got %v", err)
	}

	c1, err := svc.Add(ctx, sh.ID, "Perros")
	if err != nil {
		t.Fatalf("Add category: %v", err)
	}
	if _, err := svc.Add(ctx, sh.ID, "Gatos"); err != nil {
		t.Fatalf("Add category: %v", err)
	}
	if _, err := svc.Rename(ctx, c1.ID, "gatos"); !errors.Is(err, categories.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on rename collision, got %v", err)
	}
}

func TestDelete_MigratesAdoptedDropsRest(t *testing.T) {
	store, sheltersSvc, svc := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	sh, err := sheltersSvc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add shelter: %v", err)
	}
	unset, err := sheltersSvc.UnsetCategoryOf(ctx, sh.ID)
	if err != nil {
		t.Fatalf("UnsetCategoryOf: %v", err)
	}
	c, err := svc.Add(ctx, sh.ID, "Perros")
	if err != nil {
		t.Fatalf("Add category: %v", err)
	}

	adopted, err := store.Animals().Create(ctx, animals.Animal{
		Name: "Luna", State: animals.StateAdopted, CategoryID: c.ID, ShelterID: sh.ID,
	})
	if err != nil {
		t.Fatalf("create adopted animal: %v", err)
	}
	pending, err := store.Animals().Create(ctx, animals.Animal{
		Name: "Rocky", State: animals.StatePending, CategoryID: c.ID, ShelterID: sh.ID,
	})
	if err != nil {
		t.Fatalf("create pending animal: %v", err)
	}
	if _, err := store.Adoptions().Create(ctx, adoptions.Request{
		Reference: "ref-rocky", AnimalID: pending.ID, AdopterID: 901, ShelterID: sh.ID,
		Status: adoptions.StatusPending, RequestDate: now,
	}); err != nil {
		t.Fatalf("create request: %v", err)
	}

	affected, err := svc.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// adoptado migrado (1) + solicitud borrada (1) + animal borrado (1) + categoría (1)
	if affected != 4 {
		t.Fatalf("expected 4 affected rows, got %d", affected)
	}

	got, err := store.Animals().GetByID(ctx, adopted.ID)
	if err != nil {
		t.Fatalf("adopted animal gone: %v", err)
	}
	if got.CategoryID != unset.ID {
		t.Fatalf("adopted animal not migrated to unset: %+v", got)
	}
	if _, err := store.Animals().GetByID(ctx, pending.ID); err == nil {
		t.Fatal("pending animal survived the delete")
	}
	if _, err := svc.GetByID(ctx, c.ID); !errors.Is(err, categories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted category, got %v", err)
	}
}

func TestDelete_UnsetGuard(t *testing.T) {
	_, sheltersSvc, svc := newHarness(t)
	ctx := context.Background()

	sh, err := sheltersSvc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add shelter: %v", err)
	}
	unset, err := sheltersSvc.UnsetCategoryOf(ctx, sh.ID)
	if err != nil {
		t.Fatalf("UnsetCategoryOf: %v", err)
	}
	if _, err := svc.Delete(ctx, unset.ID); !errors.Is(err, categories.ErrSentinel) {
		t.Fatalf("expected ErrSentinel, got %v", err)
	}
}
