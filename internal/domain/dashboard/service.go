package dashboard

import (
	"context"
	"time"

	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/shelters"
	"pet-shelter-platform/internal/domain/users"
)

const defaultRecent = 10

// Summary es el rollup de solo lectura. Se recalcula en cada llamada:
// acá no hay cache ni invalidación, la consistencia la dan las
// cascadas transaccionales.
type Summary struct {
	ActiveShelters   int
	TotalUsers       int // excluye baneados
	ActivatedUsers   int
	TotalRequests    int
	ApprovedRequests int

	RecentApprovals []ApprovalSummary
}

// ApprovalSummary es la proyección aplanada de una aprobación.
type ApprovalSummary struct {
	AdopterName string
	AnimalName  string
	ApprovedAt  time.Time
}

type Service struct {
	shelters shelters.Repository
	users    users.Repository
	requests adoptions.Repository
	animals  animals.Repository
}

func NewService(sheltersRepo shelters.Repository, usersRepo users.Repository, requests adoptions.Repository, animalsRepo animals.Repository) *Service {
	return &Service{
		shelters: sheltersRepo,
		users:    usersRepo,
		requests: requests,
		animals:  animalsRepo,
	}
}

func (s *Service) Summary(ctx context.Context, recent int) (Summary, error) {
	if recent <= 0 {
		recent = defaultRecent
	}

	var out Summary
	var err error

	if out.ActiveShelters, err = s.shelters.CountActive(ctx); err != nil {
		return Summary{}, err
	}
	if out.TotalUsers, err = s.users.Count(ctx, users.CountFilter{ExcludeBanned: true}); err != nil {
		return Summary{}, err
	}
	if out.ActivatedUsers, err = s.users.Count(ctx, users.CountFilter{ExcludeBanned: true, ActivatedOnly: true}); err != nil {
		return Summary{}, err
	}
	if out.TotalRequests, err = s.requests.Count(ctx); err != nil {
		return Summary{}, err
	}
	if out.ApprovedRequests, err = s.requests.CountApproved(ctx); err != nil {
		return Summary{}, err
	}

	approved, err := s.requests.ListRecentApproved(ctx, recent)
	if err != nil {
		return Summary{}, err
	}

	out.RecentApprovals = make([]ApprovalSummary, 0, len(approved))
	for _, rq := range approved {
		item := ApprovalSummary{}
		if rq.ApprovedAt != nil {
			item.ApprovedAt = *rq.ApprovedAt
		}
		if u, err := s.users.GetByID(ctx, rq.AdopterID); err == nil {
			item.AdopterName = u.Name
		}
		if a, err := s.animals.GetByID(ctx, rq.AnimalID); err == nil {
			item.AnimalName = a.Name
		}
		out.RecentApprovals = append(out.RecentApprovals, item)
	}

	return out, nil
}
