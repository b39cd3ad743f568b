package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-platform/internal/domain/categories"
)

type CategoriesRepo struct {
	db *DB
}

func NewCategoriesRepo(db *DB) *CategoriesRepo {
	return &CategoriesRepo{db: db}
}

const categoryCols = `id, shelter_id, name, unset, created_at`

func (r *CategoriesRepo) Create(ctx context.Context, c categories.Category) (categories.Category, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO categories (shelter_id, name, unset, created_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`,
		c.ShelterID,
		c.Name,
		c.Unset,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return categories.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, c categories.Category) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		UPDATE categories SET name = $2, unset = $3 WHERE id = $1
	`, c.ID, c.Name, c.Unset)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id int64) (categories.Category, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+categoryCols+` FROM categories WHERE id = $1
	`, id)
	return scanCategory(row)
}

func (r *CategoriesRepo) GetByName(ctx context.Context, shelterID int64, name string) (categories.Category, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+categoryCols+` FROM categories
		WHERE shelter_id = $1 AND lower(name) = lower($2)
	`, shelterID, name)
	return scanCategory(row)
}

func (r *CategoriesRepo) GetUnset(ctx context.Context, shelterID int64) (categories.Category, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+categoryCols+` FROM categories
		WHERE shelter_id = $1 AND unset
	`, shelterID)
	return scanCategory(row)
}

func (r *CategoriesRepo) ListByShelter(ctx context.Context, shelterID int64) ([]categories.Category, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT `+categoryCols+` FROM categories WHERE shelter_id = $1 ORDER BY id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]categories.Category, 0)
	for rows.Next() {
		var c categories.Category
		if err := rows.Scan(&c.ID, &c.ShelterID, &c.Name, &c.Unset, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoriesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoriesRepo) DeleteAllForShelter(ctx context.Context, shelterID int64) (int, error) {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		DELETE FROM categories WHERE shelter_id = $1
	`, shelterID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanCategory(row *sql.Row) (categories.Category, error) {
	var c categories.Category
	if err := row.Scan(&c.ID, &c.ShelterID, &c.Name, &c.Unset, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return categories.Category{}, ErrNotFound
		}
		return categories.Category{}, err
	}
	return c, nil
}
