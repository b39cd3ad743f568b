package shelters

import "time"

// Kind reemplaza la identificación de sentinels por substring en el
// nombre: el lookup es por kind, el nombre queda solo para mostrar.
type Kind string

const (
	KindRegular Kind = "regular"
	// KindDeleted estaciona animales adoptados (y sus solicitudes
	// aprobadas) cuyo shelter fue borrado.
	KindDeleted Kind = "deleted"
	// KindUnassigned estaciona staff sin shelter.
	KindUnassigned Kind = "unassigned"
)

type Shelter struct {
	ID int64

	Name        string // único, case-insensitive
	Location    string
	Phone       string
	Description string

	Kind Kind

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sentinel reporta si el shelter es uno de los dos permanentes.
func (s Shelter) Sentinel() bool {
	return s.Kind != KindRegular
}
