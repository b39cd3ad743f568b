package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-platform/internal/domain/animals"
)

type AnimalsRepo struct {
	db *DB
}

func NewAnimalsRepo(db *DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalCols = `id, name, breed, age, medication_history, state, category_id, shelter_id, created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO animals (name, breed, age, medication_history, state, category_id, shelter_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		a.Name,
		a.Breed,
		a.Age,
		a.MedicationHistory,
		a.State,
		a.CategoryID,
		a.ShelterID,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			breed = $3,
			age = $4,
			medication_history = $5,
			state = $6,
			category_id = $7,
			shelter_id = $8,
			updated_at = $9
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Breed,
		a.Age,
		a.MedicationHistory,
		a.State,
		a.CategoryID,
		a.ShelterID,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+animalCols+` FROM animals WHERE id = $1
	`, id)
	return scanAnimal(row)
}

// GetForUpdate toma lock de fila; sólo tiene sentido dentro de Atomic.
func (r *AnimalsRepo) GetForUpdate(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+animalCols+` FROM animals WHERE id = $1 FOR UPDATE
	`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) ListByCategory(ctx context.Context, categoryID int64) ([]animals.Animal, error) {
	return r.list(ctx, `category_id`, categoryID)
}

func (r *AnimalsRepo) ListByShelter(ctx context.Context, shelterID int64) ([]animals.Animal, error) {
	return r.list(ctx, `shelter_id`, shelterID)
}

func (r *AnimalsRepo) list(ctx context.Context, col string, id int64) ([]animals.Animal, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT `+animalCols+` FROM animals WHERE `+col+` = $1 ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		var a animals.Animal
		if err := rows.Scan(&a.ID, &a.Name, &a.Breed, &a.Age, &a.MedicationHistory, &a.State, &a.CategoryID, &a.ShelterID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnimal(row *sql.Row) (animals.Animal, error) {
	var a animals.Animal
	if err := row.Scan(&a.ID, &a.Name, &a.Breed, &a.Age, &a.MedicationHistory, &a.State, &a.CategoryID, &a.ShelterID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}
