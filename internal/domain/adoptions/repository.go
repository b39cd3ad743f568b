package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, rq Request) (Request, error)
	Update(ctx context.Context, rq Request) error
	GetByID(ctx context.Context, id int64) (Request, error)
	GetByReference(ctx context.Context, reference string) (Request, error)
	// GetByPair no filtra por status: una solicitud previa en
	// cualquier estado bloquea el re-envío.
	GetByPair(ctx context.Context, animalID, adopterID int64) (Request, error)
	ListByAnimal(ctx context.Context, animalID int64) ([]Request, error)
	ListByAdopter(ctx context.Context, adopterID int64) ([]Request, error)
	Delete(ctx context.Context, id int64) error
	DeleteByAnimal(ctx context.Context, animalID int64) (int, error)

	// agregados para el dashboard
	Count(ctx context.Context) (int, error)
	CountApproved(ctx context.Context) (int, error)
	ListRecentApproved(ctx context.Context, limit int) ([]Request, error)
}
