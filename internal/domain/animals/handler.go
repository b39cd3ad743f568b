package animals

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
	r.Post("/animals", createAnimalHandler(svc))
	r.Get("/animals/{animalID}", getAnimalHandler(svc))
	r.Get("/shelters/{shelterID}/animals", listByShelterHandler(svc))
	r.Get("/categories/{categoryID}/animals", listByCategoryHandler(svc))
}

type createAnimalRequest struct {
	Name              string `json:"name"`
	Breed             string `json:"breed"`
	Age               int    `json:"age"`
	MedicationHistory string `json:"medication_history"`
	CategoryID        int64  `json:"category_id"`
}

type animalResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Breed             string    `json:"breed"`
	Age               int       `json:"age"`
	MedicationHistory string    `json:"medication_history"`
	State             string    `json:"state"`
	CategoryID        int64     `json:"category_id"`
	ShelterID         int64     `json:"shelter_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:                a.ID,
		Name:              a.Name,
		Breed:             a.Breed,
		Age:               a.Age,
		MedicationHistory: a.MedicationHistory,
		State:             string(a.State),
		CategoryID:        a.CategoryID,
		ShelterID:         a.ShelterID,
		CreatedAt:         a.CreatedAt,
	}
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin, auth.RoleStaff) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:              req.Name,
			Breed:             req.Breed,
			Age:               req.Age,
			MedicationHistory: req.MedicationHistory,
			CategoryID:        req.CategoryID,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "animalID")
		if !ok {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func listByShelterHandler(svc *Service) http.HandlerFunc {
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

		writeJSON(w, http.StatusOK, toAnimalResponses(list))
	}
}

func listByCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, ok := pathID(r, "categoryID")
		if !ok {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		list, err := svc.ListByCategory(r.Context(), categoryID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponses(list))
	}
}

func toAnimalResponses(list []Animal) []animalResponse {
	out := make([]animalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAnimalResponse(a))
	}
	return out
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id, err == nil && id > 0
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCategoryNotFound):
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
