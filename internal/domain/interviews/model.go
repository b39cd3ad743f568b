package interviews

import "time"

// Interview es el slot agendado para una solicitud aprobada.
// Relación 1:1 con la solicitud (FK único).
type Interview struct {
	ID        int64
	RequestID int64

	// ScheduledAt es fecha pura, normalizada a medianoche UTC.
	ScheduledAt time.Time

	CreatedAt time.Time
}
