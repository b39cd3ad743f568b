package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pet-shelter-platform/internal/middleware"
	"pet-shelter-platform/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/shelters/{shelterID}/categories", addCategoryHandler(svc))
	r.Get("/shelters/{shelterID}/categories", listCategoriesHandler(svc))
	r.Patch("/categories/{categoryID}", renameCategoryHandler(svc))
	r.Delete("/categories/{categoryID}", deleteCategoryHandler(svc))
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	ShelterID int64  `json:"shelter_id"`
	Name      string `json:"name"`
	Unset     bool   `json:"unset"`
}

type deleteCategoryResponse struct {
	Affected int `json:"affected"`
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		ShelterID: c.ShelterID,
		Name:      c.Name,
		Unset:     c.Unset,
	}
}

func addCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		shelterID, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Add(r.Context(), shelterID, req.Name)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCategoryResponse(c))
	}
}

func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		list, err := svc.ListByShelter(r.Context(), shelterID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]categoryResponse, 0, len(list))
		for _, c := range list {
			out = append(out, toCategoryResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func renameCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		categoryID, ok := pathID(r, "categoryID")
		if !ok {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Rename(r.Context(), categoryID, req.Name)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

func deleteCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		categoryID, ok := pathID(r, "categoryID")
		if !ok {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		affected, err := svc.Delete(r.Context(), categoryID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteCategoryResponse{Affected: affected})
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
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrShelterNotFound):
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
