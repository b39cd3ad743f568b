package interviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-shelter-platform/internal/middleware"
	"pet-shelter-platform/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/interviews", listByDateHandler(svc))
	r.Get("/adoptions/{requestID}/interview", getByRequestHandler(svc))
}

type interviewResponse struct {
	ID          int64     `json:"id"`
	RequestID   int64     `json:"request_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func toInterviewResponse(iv Interview) interviewResponse {
	return interviewResponse{
		ID:          iv.ID,
		RequestID:   iv.RequestID,
		ScheduledAt: iv.ScheduledAt,
	}
}

// listByDateHandler lista la agenda de un día: GET /interviews?date=2026-09-01
func listByDateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		list, err := svc.ListByDate(r.Context(), day)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]interviewResponse, 0, len(list))
		for _, iv := range list {
			out = append(out, toInterviewResponse(iv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getByRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
		if err != nil || requestID <= 0 {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		iv, err := svc.GetByRequest(r.Context(), requestID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInterviewResponse(iv))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
