package animals

import "time"

// AdoptionState es el estado de adopción del animal.
// @Enum available, pending, adopted
type AdoptionState string

const (
	StateAvailable AdoptionState = "available"
	StatePending   AdoptionState = "pending"
	StateAdopted   AdoptionState = "adopted"
)

type Animal struct {
	ID int64

	Name              string
	Breed             string
	Age               int
	MedicationHistory string

	State AdoptionState

	// ShelterID se mantiene en sync con la categoría al escribir;
	// el FK directo existe para reasignar rápido en las cascadas.
	CategoryID int64
	ShelterID  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
