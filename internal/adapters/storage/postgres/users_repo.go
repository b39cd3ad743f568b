package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-shelter-platform/internal/domain/users"
)

type UsersRepo struct {
	db *DB
}

func NewUsersRepo(db *DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userCols = `id, name, email, kind, activated, banned, created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO users (name, email, kind, activated, banned, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		u.Name,
		u.Email,
		u.Kind,
		u.Activated,
		u.Banned,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			email = $3,
			kind = $4,
			activated = $5,
			banned = $6,
			updated_at = $7
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.Email,
		u.Kind,
		u.Activated,
		u.Banned,
		u.UpdatedAt,
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

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+userCols+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)
	`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *UsersRepo) Count(ctx context.Context, f users.CountFilter) (int, error) {
	query := `SELECT count(*) FROM users WHERE TRUE`
	if f.ExcludeBanned {
		query += ` AND NOT banned`
	}
	if f.ActivatedOnly {
		query += ` AND activated`
	}

	var n int
	err := r.db.q(ctx).QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Kind, &u.Activated, &u.Banned, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
