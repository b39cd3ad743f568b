package interviews

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Repo de test (in-memory)
// -------------------------

type testRepo struct {
	seq   int64
	byReq map[int64]Interview
}

func newTestRepo() *testRepo {
	return &testRepo{byReq: map[int64]Interview{}}
}

func (r *testRepo) Create(ctx context.Context, iv Interview) (Interview, error) {
	if _, ok := r.byReq[iv.RequestID]; ok {
		return Interview{}, errors.New("repo: request already has interview")
	}
	r.seq++
	iv.ID = r.seq
	r.byReq[iv.RequestID] = iv
	return iv, nil
}

func (r *testRepo) GetByRequest(ctx context.Context, requestID int64) (Interview, error) {
	iv, ok := r.byReq[requestID]
	if !ok {
		return Interview{}, errors.New("repo: not found")
	}
	return iv, nil
}

func (r *testRepo) CountByDate(ctx context.Context, day time.Time) (int, error) {
	n := 0
	for _, iv := range r.byReq {
		if iv.ScheduledAt.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (r *testRepo) ListByDate(ctx context.Context, day time.Time) ([]Interview, error) {
	out := make([]Interview, 0)
	for _, iv := range r.byReq {
		if iv.ScheduledAt.Equal(day) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *testRepo) LockSchedule(ctx context.Context) error { return nil }

func seedDay(t *testing.T, r *testRepo, day time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		r.seq++
		r.byReq[1000+r.seq] = Interview{ID: r.seq, RequestID: 1000 + r.seq, ScheduledAt: day}
	}
}

// -------------------------
// Tests
// -------------------------

func TestSchedule_EmptyDay_IsRequestDatePlusFive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	reqDate := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	iv, err := svc.Schedule(context.Background(), 7, reqDate)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}

	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !iv.ScheduledAt.Equal(want) {
		t.Fatalf("expected slot %v, got %v", want, iv.ScheduledAt)
	}
}

func TestSchedule_SixBookingsAllowed_SeventhRollsOver(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	reqDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	// con 5 previas el día todavía acepta (sexta reserva)
	seedDay(t, repo, day, 5)
	iv, err := svc.Schedule(context.Background(), 1, reqDate)
	if err != nil {
		t.Fatalf("Schedule #6 error: %v", err)
	}
	if !iv.ScheduledAt.Equal(day) {
		t.Fatalf("expected 6th booking on %v, got %v", day, iv.ScheduledAt)
	}

	// la séptima pasa al día siguiente
	iv2, err := svc.Schedule(context.Background(), 2, reqDate)
	if err != nil {
		t.Fatalf("Schedule #7 error: %v", err)
	}
	want := day.AddDate(0, 0, 1)
	if !iv2.ScheduledAt.Equal(want) {
		t.Fatalf("expected 7th booking on %v, got %v", want, iv2.ScheduledAt)
	}
}

func TestSchedule_SkipsConsecutiveFullDays(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	reqDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	d0 := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	seedDay(t, repo, d0, 6)
	seedDay(t, repo, d0.AddDate(0, 0, 1), 6)

	iv, err := svc.Schedule(context.Background(), 3, reqDate)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	want := d0.AddDate(0, 0, 2)
	if !iv.ScheduledAt.Equal(want) {
		t.Fatalf("expected slot %v, got %v", want, iv.ScheduledAt)
	}
}

func TestSchedule_InvalidInput(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Schedule(context.Background(), 0, time.Now()); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for id 0, got %v", err)
	}
	if _, err := svc.Schedule(context.Background(), 1, time.Time{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero date, got %v", err)
	}
}

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	in := time.Date(2026, 3, 10, 22, 15, 0, 0, loc) // 2026-03-11 01:15 UTC
	got := Day(in)
	want := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
