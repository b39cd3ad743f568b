package shelters

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
	r.Route("/shelters", func(sr chi.Router) {
		sr.Post("/", addShelterHandler(svc))
		sr.Get("/", listSheltersHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc))
		sr.Delete("/{shelterID}", deleteShelterHandler(svc))
	})
}

type addShelterRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

type shelterResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type deleteShelterResponse struct {
	Affected int `json:"affected"`
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ID:          sh.ID,
		Name:        sh.Name,
		Location:    sh.Location,
		Phone:       sh.Phone,
		Description: sh.Description,
		CreatedAt:   sh.CreatedAt,
	}
}

func addShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req addShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sh, err := svc.Add(r.Context(), AddInput{
			Name:        req.Name,
			Location:    req.Location,
			Phone:       req.Phone,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toShelterResponse(sh))
	}
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListActive(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]shelterResponse, 0, len(list))
		for _, sh := range list {
			out = append(out, toShelterResponse(sh))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		sh, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func deleteShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		id, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		affected, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteShelterResponse{Affected: affected})
	}
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id, err == nil && id > 0
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrSentinel):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
