package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-platform/internal/domain/staffing"
)

type StaffingRepo struct {
	db *DB
}

func NewStaffingRepo(db *DB) *StaffingRepo {
	return &StaffingRepo{db: db}
}

func (r *StaffingRepo) Create(ctx context.Context, st staffing.Staff) (staffing.Staff, error) {
	_, err := r.db.q(ctx).ExecContext(ctx, `
		INSERT INTO staff (user_id, phone, type, shelter_id, hire_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		st.UserID,
		st.Phone,
		st.Type,
		st.ShelterID,
		toNullTime(st.HireDate),
		st.CreatedAt,
	)
	if err != nil {
		return staffing.Staff{}, err
	}
	return st, nil
}

func (r *StaffingRepo) Update(ctx context.Context, st staffing.Staff) error {
	res, err := r.db.q(ctx).ExecContext(ctx, `
		UPDATE staff
		SET
			phone = $2,
			type = $3,
			shelter_id = $4,
			hire_date = $5
		WHERE user_id = $1
	`,
		st.UserID,
		st.Phone,
		st.Type,
		st.ShelterID,
		toNullTime(st.HireDate),
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

func (r *StaffingRepo) GetByUser(ctx context.Context, userID int64) (staffing.Staff, error) {
	row := r.db.q(ctx).QueryRowContext(ctx, `
		SELECT user_id, phone, type, shelter_id, hire_date, created_at
		FROM staff
		WHERE user_id = $1
	`, userID)
	return scanStaff(row)
}

func (r *StaffingRepo) ListByShelter(ctx context.Context, shelterID int64) ([]staffing.Staff, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, `
		SELECT user_id, phone, type, shelter_id, hire_date, created_at
		FROM staff
		WHERE shelter_id = $1
		ORDER BY user_id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staffing.Staff, 0)
	for rows.Next() {
		var st staffing.Staff
		var hire sql.NullTime
		if err := rows.Scan(&st.UserID, &st.Phone, &st.Type, &st.ShelterID, &hire, &st.CreatedAt); err != nil {
			return nil, err
		}
		if hire.Valid {
			st.HireDate = hire.Time
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *StaffingRepo) DeleteByShelter(ctx context.Context, shelterID int64) (int, error) {
	res, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM staff WHERE shelter_id = $1`, shelterID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanStaff(row *sql.Row) (staffing.Staff, error) {
	var st staffing.Staff
	var hire sql.NullTime
	if err := row.Scan(&st.UserID, &st.Phone, &st.Type, &st.ShelterID, &hire, &st.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return staffing.Staff{}, ErrNotFound
		}
		return staffing.Staff{}, err
	}
	if hire.Valid {
		st.HireDate = hire.Time
	}
	return st, nil
}
