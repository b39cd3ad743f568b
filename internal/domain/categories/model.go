package categories

import "time"

type Category struct {
	ID        int64
	ShelterID int64

	// Name es único por shelter (case-insensitive).
	Name string

	// Unset marca la categoría de resguardo que todo shelter tiene
	// desde su alta. Nunca se borra por la vía normal; recibe los
	// animales adoptados cuya categoría desaparece.
	Unset bool

	CreatedAt time.Time
}
