package users

import "context"

// CountFilter acota los conteos del dashboard.
type CountFilter struct {
	ExcludeBanned bool
	ActivatedOnly bool
}

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Count(ctx context.Context, f CountFilter) (int, error)
}
