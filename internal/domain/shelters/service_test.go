package shelters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "pet-shelter-platform/internal/adapters/storage/memory"
	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/shelters"
	"pet-shelter-platform/internal/domain/staffing"
)

// Los tests de la cascada corren contra el store in-memory completo:
// armar fakes para cinco repos no aporta nada.

func newHarness(t *testing.T) (*mem.Store, *shelters.Service) {
	t.Helper()

	store := mem.NewStore()
	svc := shelters.NewService(
		store.Shelters(),
		store.Categories(),
		store.Animals(),
		store.Adoptions(),
		store.Staffing(),
		store,
	)
	if err := svc.EnsureSentinels(context.Background()); err != nil {
		t.Fatalf("EnsureSentinels: %v", err)
	}
	return store, svc
}

func TestEnsureSentinels_Idempotent(t *testing.T) {
	store, svc := newHarness(t)
	ctx := context.Background()

	// segunda pasada no duplica nada
	if err := svc.EnsureSentinels(ctx); err != nil {
		t.Fatalf("EnsureSentinels #2: %v", err)
	}

	for _, k := range []shelters.Kind{shelters.KindDeleted, shelters.KindUnassigned} {
		sh, err := store.Shelters().GetByKind(ctx, k)
		if err != nil {
			t.Fatalf("sentinel %s missing: %v", k, err)
		}
		if !sh.Sentinel() {
			t.Fatalf("sentinel %s reports Sentinel() == false", k)
		}
		c, err := svc.UnsetCategoryOf(ctx, sh.ID)
		if err != nil {
			t.Fatalf("unset category of %s missing: %v", k, err)
		}
		if !c.Unset {
			t.Fatalf("unset category of %s has Unset == false", k)
		}
	}

	// los sentinels no figuran en el listado activo
	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active shelters, got %d", len(active))
	}
}

func TestAdd_CreatesUnsetCategory(t *testing.T) {
	_, svc := newHarness(t)
	ctx := context.Background()

	sh, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	c, err := svc.UnsetCategoryOf(ctx, sh.ID)
	if err != nil {
		t.Fatalf("UnsetCategoryOf: %v", err)
	}
	if !c.Unset || c.Name != "Norte-Unset" {
		t.Fatalf("unexpected unset category %+v", c)
	}
}

func TestAdd_DuplicateName(t *testing.T) {
	_, svc := newHarness(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"}); !errors.Is(err, shelters.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDelete_SentinelGuard(t *testing.T) {
	_, svc := newHarness(t)
	ctx := context.Background()

	id, err := svc.UnassignedID(ctx)
	if err != nil {
		t.Fatalf("UnassignedID: %v", err)
	}
	if _, err := svc.Delete(ctx, id); !errors.Is(err, shelters.ErrSentinel) {
		t.Fatalf("expected ErrSentinel, got %v", err)
	}
}

func TestDelete_CascadeRelocatesAdoptedAndDropsRest(t *testing.T) {
	store, svc := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	sh, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	cat, err := svc.UnsetCategoryOf(ctx, sh.ID)
	if err != nil {
		t.Fatalf("UnsetCategoryOf: %v", err)
	}

	adopted, err := store.Animals().Create(ctx, animals.Animal{
		Name: "Luna", State: animals.StateAdopted, CategoryID: cat.ID, ShelterID: sh.ID,
	})
	if err != nil {
		t.Fatalf("create adopted animal: %v", err)
	}
	pending, err := store.Animals().Create(ctx, animals.Animal{
		Name: "Rocky", State: animals.StatePending, CategoryID: cat.ID, ShelterID: sh.ID,
	})
	if err != nil {
		t.Fatalf("create pending animal: %v", err)
	}

	approvedAt := now
	winner, err := store.Adoptions().Create(ctx, adoptions.Request{
		Reference: "ref-luna", AnimalID: adopted.ID, AdopterID: 900, ShelterID: sh.ID,
		Status: adoptions.StatusApproved, RequestDate: now, ApprovedAt: &approvedAt,
	})
	if err != nil {
		t.Fatalf("create approved request: %v", err)
	}
	doomed, err := store.Adoptions().Create(ctx, adoptions.Request{
		Reference: "ref-rocky", AnimalID: pending.ID, AdopterID: 901, ShelterID: sh.ID,
		Status: adoptions.StatusPending, RequestDate: now,
	})
	if err != nil {
		t.Fatalf("create pending request: %v", err)
	}

	if _, err := store.Staffing().Create(ctx, staffing.Staff{UserID: 700, Type: staffing.TypeCaretaker, ShelterID: sh.ID}); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	affected, err := svc.Delete(ctx, sh.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if affected == 0 {
		t.Fatal("expected affected > 0")
	}

	// el adoptado termina estacionado en Deleted, categoría Unset del sentinel
	parking, err := store.Shelters().GetByKind(ctx, shelters.KindDeleted)
	if err != nil {
		t.Fatalf("GetByKind deleted: %v", err)
	}
	parkCat, err := store.Categories().GetUnset(ctx, parking.ID)
	if err != nil {
		t.Fatalf("GetUnset of deleted: %v", err)
	}

	got, err := store.Animals().GetByID(ctx, adopted.ID)
	if err != nil {
		t.Fatalf("adopted animal gone: %v", err)
	}
	if got.ShelterID != parking.ID || got.CategoryID != parkCat.ID {
		t.Fatalf("adopted animal not parked: %+v", got)
	}

	// la solicitud aprobada sigue al animal; la pendiente desaparece
	rq, err := store.Adoptions().GetByID(ctx, winner.ID)
	if err != nil {
		t.Fatalf("approved request gone: %v", err)
	}
	if rq.ShelterID != parking.ID {
		t.Fatalf("approved request not repointed: %+v", rq)
	}
	if _, err := store.Adoptions().GetByID(ctx, doomed.ID); err == nil {
		t.Fatal("pending request survived the cascade")
	}

	// el animal nunca adoptado desaparece
	if _, err := store.Animals().GetByID(ctx, pending.ID); err == nil {
		t.Fatal("pending animal survived the cascade")
	}

	// staff, categorías y shelter desaparecen
	staffLeft, err := store.Staffing().ListByShelter(ctx, sh.ID)
	if err != nil {
		t.Fatalf("ListByShelter staff: %v", err)
	}
	if len(staffLeft) != 0 {
		t.Fatalf("staff survived the cascade: %d", len(staffLeft))
	}
	catsLeft, err := store.Categories().ListByShelter(ctx, sh.ID)
	if err != nil {
		t.Fatalf("ListByShelter categories: %v", err)
	}
	if len(catsLeft) != 0 {
		t.Fatalf("categories survived the cascade: %d", len(catsLeft))
	}
	if _, err := svc.GetByID(ctx, sh.ID); !errors.Is(err, shelters.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted shelter, got %v", err)
	}
}

func TestDelete_ThenReAddSameName(t *testing.T) {
	_, svc := newHarness(t)
	ctx := context.Background()

	sh, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Delete(ctx, sh.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	again, err := svc.Add(ctx, shelters.AddInput{Name: "Norte"})
	if err != nil {
		t.Fatalf("re-Add after delete: %v", err)
	}
	if again.ID == sh.ID {
		t.Fatal("re-added shelter reused the old id")
	}
	if _, err := svc.UnsetCategoryOf(ctx, again.ID); err != nil {
		t.Fatalf("re-added shelter lacks unset category: %v", err)
	}

	n, err := svc.CountActive(ctx)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 active shelter, got %d", n)
	}
}
