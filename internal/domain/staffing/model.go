package staffing

import "time"

// StaffType clasifica al personal del shelter.
type StaffType string

const (
	TypeCaretaker    StaffType = "caretaker"
	TypeVeterinarian StaffType = "veterinarian"
	TypeCoordinator  StaffType = "coordinator"
)

// Staff comparte identidad con users.User (UserID es PK).
type Staff struct {
	UserID int64

	Phone string
	Type  StaffType

	// ShelterID arranca en el sentinel Unassigned y cambia con cada
	// asignación. HireDate se estampa al asignar.
	ShelterID int64
	HireDate  time.Time

	CreatedAt time.Time
}
