package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id int64) (Animal, error)
	// GetForUpdate carga el animal tomando lock de fila (postgres:
	// SELECT ... FOR UPDATE). Fuera de transacción equivale a GetByID.
	GetForUpdate(ctx context.Context, id int64) (Animal, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Animal, error)
	ListByShelter(ctx context.Context, shelterID int64) ([]Animal, error)
	Delete(ctx context.Context, id int64) error
}
