package shelters

import "context"

type Repository interface {
	Create(ctx context.Context, s Shelter) (Shelter, error)
	GetByID(ctx context.Context, id int64) (Shelter, error)
	// GetByName matchea case-insensitive.
	GetByName(ctx context.Context, name string) (Shelter, error)
	GetByKind(ctx context.Context, k Kind) (Shelter, error)
	// ListActive y CountActive excluyen sentinels.
	ListActive(ctx context.Context) ([]Shelter, error)
	CountActive(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}
