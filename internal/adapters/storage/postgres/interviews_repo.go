package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-shelter-platform/internal/domain/interviews"
)

type InterviewsRepo struct {
	db *DB
}

func NewInterviewsRepo(db *DB) *InterviewsRepo {
	return &InterviewsRepo{db: db}
}

// key del advisory lock que serializa el agendado
const scheduleLockKey = 920_001

func (r *InterviewsRepo) Create(ctx context.Context, iv interviews.Interview) (interviews.Interview, error) {
	err := r.db.q(ctx).QueryRowContext(ctx, `
		INSERT INTO interviews (request_id, scheduled_at, created_at)
		VALUES ($1,$2,$3)
		RETURNING id
	`,
		iv.RequestID,
		iv.ScheduledAt,
		iv.CreatedAt,
	).Scan(&iv.ID)
	if err != nil {
		return interviews.Interview{}, err
	}
	return iv, nil
}

func (r *InterviewsRepo) GetByRequest(ctx context.Context, requestID int64) (interviews.Interview, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT id, request_id, scheduled_at, created_at FROM interviews WHERE request_id = $1
	`, requestID)

	var iv interviews.Interview
	if err := row.Scan(&iv.ID, &iv.RequestID, &iv.ScheduledAt, &iv.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return interviews.Interview{}, ErrNotFound
		}
		return interviews.Interview{}, err
	}
	return iv, nil
}

func (r *InterviewsRepo) CountByDate(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT count(*) FROM interviews WHERE scheduled_at = $1
	`, day).Scan(&n)
	return n, err
}

func (r *InterviewsRepo) ListByDate(ctx context.Context, day time.Time) ([]interviews.Interview, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT id, request_id, scheduled_at, created_at
		FROM interviews
		WHERE scheduled_at = $1
		ORDER BY id ASC
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interviews.Interview, 0)
	for rows.Next() {
		var iv interviews.Interview
		if err := rows.Scan(&iv.ID, &iv.RequestID, &iv.ScheduledAt, &iv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// LockSchedule serializa a los schedulers concurrentes dentro de la
// transacción en curso; el lock se libera al commit/rollback.
func (r *InterviewsRepo) LockSchedule(ctx context.Context) error {
	_, err := r.db.q(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, scheduleLockKey)
	return err
}
