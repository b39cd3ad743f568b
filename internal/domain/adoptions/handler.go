package adoptions

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
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc))
		ar.Get("/mine", listMineHandler(svc))
		ar.Get("/track/{reference}", trackHandler(svc))
		ar.Get("/{requestID}", getRequestHandler(svc))
		ar.Post("/{requestID}/approve", approveHandler(svc))
		ar.Post("/{requestID}/reject", rejectHandler(svc))
		ar.Post("/{requestID}/cancel", cancelHandler(svc))
	})
	r.Get("/animals/{animalID}/requests", listByAnimalHandler(svc))
}

type submitRequest struct {
	AnimalID int64 `json:"animal_id"`
}

type requestResponse struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"`
	AnimalID    int64      `json:"animal_id"`
	AdopterID   int64      `json:"adopter_id"`
	ShelterID   int64      `json:"shelter_id"`
	Status      string     `json:"status"`
	RequestDate time.Time  `json:"request_date"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func toRequestResponse(rq Request) requestResponse {
	return requestResponse{
		ID:          rq.ID,
		Reference:   rq.Reference,
		AnimalID:    rq.AnimalID,
		AdopterID:   rq.AdopterID,
		ShelterID:   rq.ShelterID,
		Status:      string(rq.Status),
		RequestDate: rq.RequestDate,
		ApprovedAt:  rq.ApprovedAt,
	}
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adopterID, ok := callerID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rq, err := svc.Submit(r.Context(), req.AnimalID, adopterID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(rq))
	}
}

func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adopterID, ok := callerID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.ListByAdopter(r.Context(), adopterID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponses(list))
	}
}

func trackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq, err := svc.Track(r.Context(), chi.URLParam(r, "reference"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rq))
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "requestID")
		if !ok {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		rq, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rq))
	}
}

func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		id, ok := pathID(r, "requestID")
		if !ok {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		rq, err := svc.Approve(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rq))
	}
}

func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		id, ok := pathID(r, "requestID")
		if !ok {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		rq, err := svc.Reject(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rq))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adopterID, ok := callerID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := pathID(r, "requestID")
		if !ok {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		// el adoptante solo cancela lo suyo; staff/admin pasan igual
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			rq, err := svc.GetByID(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			if rq.AdopterID != adopterID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		rq, err := svc.Cancel(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rq))
	}
}

func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		animalID, ok := pathID(r, "animalID")
		if !ok {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		list, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponses(list))
	}
}

func toRequestResponses(list []Request) []requestResponse {
	out := make([]requestResponse, 0, len(list))
	for _, rq := range list {
		out = append(out, toRequestResponse(rq))
	}
	return out
}

func callerID(r *http.Request) (int64, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	return id, err == nil && id > 0
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id, err == nil && id > 0
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAnimalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateRequest):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrSchedulingFailed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
