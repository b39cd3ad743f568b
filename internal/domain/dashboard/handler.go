package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-shelter-platform/internal/middleware"
	"pet-shelter-platform/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", summaryHandler(svc))
}

type summaryResponse struct {
	ActiveShelters   int                `json:"active_shelters"`
	TotalUsers       int                `json:"total_users"`
	ActivatedUsers   int                `json:"activated_users"`
	TotalRequests    int                `json:"total_requests"`
	ApprovedRequests int                `json:"approved_requests"`
	RecentApprovals  []approvalResponse `json:"recent_approvals"`
}

type approvalResponse struct {
	AdopterName string    `json:"adopter_name"`
	AnimalName  string    `json:"animal_name"`
	ApprovedAt  time.Time `json:"approved_at"`
}

// summaryHandler: GET /dashboard?recent=10 (solo admin)
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		recent, _ := strconv.Atoi(r.URL.Query().Get("recent"))

		sum, err := svc.Summary(r.Context(), recent)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := summaryResponse{
			ActiveShelters:   sum.ActiveShelters,
			TotalUsers:       sum.TotalUsers,
			ActivatedUsers:   sum.ActivatedUsers,
			TotalRequests:    sum.TotalRequests,
			ApprovedRequests: sum.ApprovedRequests,
			RecentApprovals:  make([]approvalResponse, 0, len(sum.RecentApprovals)),
		}
		for _, ap := range sum.RecentApprovals {
			out.RecentApprovals = append(out.RecentApprovals, approvalResponse{
				AdopterName: ap.AdopterName,
				AnimalName:  ap.AnimalName,
				ApprovedAt:  ap.ApprovedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
