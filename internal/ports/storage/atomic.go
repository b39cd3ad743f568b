package storage

import "context"

// Atomic ejecuta fn como una única unidad de trabajo contra el store.
// Si fn devuelve error, ninguna escritura queda aplicada.
// Las implementaciones propagan la transacción vía ctx, así que los
// repos llamados dentro de fn participan de la misma unidad.
type Atomic interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}
