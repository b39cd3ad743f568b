package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-platform/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *DB
}

func NewAdoptionsRepo(db *DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const requestCols = `id, reference, animal_id, adopter_id, shelter_id, status, request_date, approved_at`

func (r *AdoptionsRepo) Create(ctx context.Context, rq adoptions.Request) (adoptions.Request, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO adoption_requests (reference, animal_id, adopter_id, shelter_id, status, request_date, approved_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		rq.Reference,
		rq.AnimalID,
		rq.AdopterID,
		rq.ShelterID,
		rq.Status,
		rq.RequestDate,
		toNullTimePtr(rq.ApprovedAt),
	).Scan(&rq.ID)
	if err != nil {
		return adoptions.Request{}, err
	}
	return rq, nil
}

func (r *AdoptionsRepo) Update(ctx context.Context, rq adoptions.Request) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		UPDATE adoption_requests
		SET
			shelter_id = $2,
			status = $3,
			approved_at = $4
		WHERE id = $1
	`,
		rq.ID,
		rq.ShelterID,
		rq.Status,
		toNullTimePtr(rq.ApprovedAt),
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

func (r *AdoptionsRepo) GetByID(ctx context.Context, id int64) (adoptions.Request, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+requestCols+` FROM adoption_requests WHERE id = $1
	`, id)
	return scanRequest(row)
}

func (r *AdoptionsRepo) GetByReference(ctx context.Context, reference string) (adoptions.Request, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+requestCols+` FROM adoption_requests WHERE reference = $1
	`, reference)
	return scanRequest(row)
}

func (r *AdoptionsRepo) GetByPair(ctx context.Context, animalID, adopterID int64) (adoptions.Request, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT `+requestCols+` FROM adoption_requests
		WHERE animal_id = $1 AND adopter_id = $2
	`, animalID, adopterID)
	return scanRequest(row)
}

func (r *AdoptionsRepo) ListByAnimal(ctx context.Context, animalID int64) ([]adoptions.Request, error) {
	return r.list(ctx, `animal_id`, animalID)
}

func (r *AdoptionsRepo) ListByAdopter(ctx context.Context, adopterID int64) ([]adoptions.Request, error) {
	return r.list(ctx, `adopter_id`, adopterID)
}

func (r *AdoptionsRepo) list(ctx context.Context, col string, id int64) ([]adoptions.Request, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT `+requestCols+` FROM adoption_requests WHERE `+col+` = $1 ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *AdoptionsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM adoption_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) DeleteByAnimal(ctx context.Context, animalID int64) (int, error) {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		DELETE FROM adoption_requests WHERE animal_id = $1
	`, animalID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *AdoptionsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM adoption_requests`).Scan(&n)
	return n, err
}

func (r *AdoptionsRepo) CountApproved(ctx context.Context) (int, error) {
	var n int
	err := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT count(*) FROM adoption_requests WHERE status = $1
	`, adoptions.StatusApproved).Scan(&n)
	return n, err
}

func (r *AdoptionsRepo) ListRecentApproved(ctx context.Context, limit int) ([]adoptions.Request, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT `+requestCols+` FROM adoption_requests
		WHERE status = $1 AND approved_at IS NOT NULL
		ORDER BY approved_at DESC
		LIMIT $2
	`, adoptions.StatusApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func scanRequest(row *sql.Row) (adoptions.Request, error) {
	var rq adoptions.Request
	var approved sql.NullTime
	if err := row.Scan(&rq.ID, &rq.Reference, &rq.AnimalID, &rq.AdopterID, &rq.ShelterID, &rq.Status, &rq.RequestDate, &approved); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}
	if approved.Valid {
		t := approved.Time
		rq.ApprovedAt = &t
	}
	return rq, nil
}

func collectRequests(rows *sql.Rows) ([]adoptions.Request, error) {
	out := make([]adoptions.Request, 0)
	for rows.Next() {
		var rq adoptions.Request
		var approved sql.NullTime
		if err := rows.Scan(&rq.ID, &rq.Reference, &rq.AnimalID, &rq.AdopterID, &rq.ShelterID, &rq.Status, &rq.RequestDate, &approved); err != nil {
			return nil, err
		}
		if approved.Valid {
			t := approved.Time
			rq.ApprovedAt = &t
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}
