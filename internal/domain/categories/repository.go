package categories

import "context"

type Repository interface {
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, c Category) error
	GetByID(ctx context.Context, id int64) (Category, error)
	// GetByName matchea case-insensitive dentro del shelter.
	GetByName(ctx context.Context, shelterID int64, name string) (Category, error)
	GetUnset(ctx context.Context, shelterID int64) (Category, error)
	ListByShelter(ctx context.Context, shelterID int64) ([]Category, error)
	Delete(ctx context.Context, id int64) error
	// DeleteAllForShelter borra en bloque, sin migrar animales: lo usa
	// la cascada de shelter, que ya los reubicó antes.
	DeleteAllForShelter(ctx context.Context, shelterID int64) (int, error)
}
