package interviews

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, iv Interview) (Interview, error)
	GetByRequest(ctx context.Context, requestID int64) (Interview, error)
	CountByDate(ctx context.Context, day time.Time) (int, error)
	ListByDate(ctx context.Context, day time.Time) ([]Interview, error)
	// LockSchedule serializa el agendado dentro de la transacción en
	// curso (postgres: advisory xact lock). En memoria es no-op porque
	// el mutex del store ya serializa.
	LockSchedule(ctx context.Context) error
}
