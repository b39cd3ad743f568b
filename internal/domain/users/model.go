package users

import "time"

// Kind distingue las variantes de usuario. Cada variante lleva sus
// campos propios en otras tablas (staff en staffing.Staff); aquí solo
// vive la identidad común.
type Kind string

const (
	KindAdmin   Kind = "admin"
	KindAdopter Kind = "adopter"
	KindStaff   Kind = "staff"
)

type User struct {
	ID    int64
	Name  string
	Email string
	Kind  Kind

	// Activated se prende al confirmar la cuenta; Banned la excluye
	// de listados y conteos sin borrar la fila.
	Activated bool
	Banned    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
