package adoptions

import "time"

// Status de la solicitud. Pending -> Approved | Rejected; ambos
// terminales. Cancelar y rechazar terminan en el mismo estado.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Request struct {
	ID int64

	// Reference es el código público de seguimiento que ve el
	// adoptante; no exponemos ids internos.
	Reference string

	AnimalID  int64
	AdopterID int64

	// ShelterID se copia del animal al crear la solicitud, así
	// sobrevive a reasignaciones del animal.
	ShelterID int64

	Status      Status
	RequestDate time.Time
	ApprovedAt  *time.Time
}
