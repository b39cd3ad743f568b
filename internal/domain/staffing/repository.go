package staffing

import "context"

type Repository interface {
	Create(ctx context.Context, st Staff) (Staff, error)
	Update(ctx context.Context, st Staff) error
	GetByUser(ctx context.Context, userID int64) (Staff, error)
	ListByShelter(ctx context.Context, shelterID int64) ([]Staff, error)
	// DeleteByShelter borra las filas; lo usa sólo la cascada de
	// shelter. Para liberar staff sin borrarlo está UnassignAll.
	DeleteByShelter(ctx context.Context, shelterID int64) (int, error)
}
