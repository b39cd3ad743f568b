package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-platform/internal/domain/shelters"
)

type SheltersRepo struct {
	db *DB
}

func NewSheltersRepo(db *DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterCols = `id, name, location, phone, description, kind, created_at, updated_at`

func (r *SheltersRepo) Create(ctx context.Context, sh shelters.Shelter) (shelters.Shelter, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO shelters (name, location, phone, description, kind, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		sh.Name,
		sh.Location,
		sh.Phone,
		sh.Description,
		sh.Kind,
		sh.CreatedAt,
		sh.UpdatedAt,
	).Scan(&sh.ID)
	if err != nil {
		return shelters.Shelter{}, err
	}
	return sh, nil
}

func (r *SheltersRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+shelterCols+` FROM shelters WHERE id = $1
	`, id)
	return scanShelter(row)
}

func (r *SheltersRepo) GetByName(ctx context.Context, name string) (shelters.Shelter, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+shelterCols+` FROM shelters WHERE lower(name) = lower($1)
	`, name)
	return scanShelter(row)
}

func (r *SheltersRepo) GetByKind(ctx context.Context, k shelters.Kind) (shelters.Shelter, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+shelterCols+` FROM shelters WHERE kind = $1 LIMIT 1
	`, k)
	return scanShelter(row)
}

func (r *SheltersRepo) ListActive(ctx context.Context) ([]shelters.Shelter, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT `+shelterCols+` FROM shelters WHERE kind = $1 ORDER BY id ASC
	`, shelters.KindRegular)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		var sh shelters.Shelter
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.Location, &sh.Phone, &sh.Description, &sh.Kind, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func (r *SheltersRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT count(*) FROM shelters WHERE kind = $1
	`, shelters.KindRegular).Scan(&n)
	return n, err
}

func (r *SheltersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM shelters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShelter(row *sql.Row) (shelters.Shelter, error) {
	var sh shelters.Shelter
	if err := row.Scan(&sh.ID, &sh.Name, &sh.Location, &sh.Phone, &sh.Description, &sh.Kind, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return shelters.Shelter{}, ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return sh, nil
}
