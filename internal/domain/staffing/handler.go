package staffing

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
	r.Route("/staff", func(sr chi.Router) {
		sr.Post("/", registerStaffHandler(svc))
		sr.Get("/{userID}", getStaffHandler(svc))
		sr.Post("/{userID}/assign/{shelterID}", assignHandler(svc))
		sr.Post("/{userID}/unassign", unassignHandler(svc))
	})
	r.Get("/shelters/{shelterID}/staff", listByShelterHandler(svc))
	r.Post("/shelters/{shelterID}/staff/unassign-all", unassignAllHandler(svc))
}

type registerStaffRequest struct {
	UserID int64  `json:"user_id"`
	Phone  string `json:"phone"`
	Type   string `json:"type"` // caretaker | veterinarian | coordinator
}

type staffResponse struct {
	UserID    int64      `json:"user_id"`
	Phone     string     `json:"phone"`
	Type      string     `json:"type"`
	ShelterID int64      `json:"shelter_id"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
}

type movedResponse struct {
	Moved int `json:"moved"`
}

func toStaffResponse(st Staff) staffResponse {
	out := staffResponse{
		UserID:    st.UserID,
		Phone:     st.Phone,
		Type:      string(st.Type),
		ShelterID: st.ShelterID,
	}
	if !st.HireDate.IsZero() {
		hd := st.HireDate
		out.HireDate = &hd
	}
	return out
}

func registerStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req registerStaffRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Register(r.Context(), RegisterInput{
			UserID: req.UserID,
			Phone:  req.Phone,
			Type:   StaffType(req.Type),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toStaffResponse(st))
	}
}

func getStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(r, "userID")
		if !ok {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		st, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toStaffResponse(st))
	}
}

func assignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		userID, ok := pathID(r, "userID")
		if !ok {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		shelterID, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		moved, err := svc.Assign(r.Context(), userID, shelterID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, movedResponse{Moved: moved})
	}
}

func unassignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		userID, ok := pathID(r, "userID")
		if !ok {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		moved, err := svc.Unassign(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, movedResponse{Moved: moved})
	}
}

func unassignAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.HasRole(r.Context(), auth.RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		shelterID, ok := pathID(r, "shelterID")
		if !ok {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		moved, err := svc.UnassignAll(r.Context(), shelterID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, movedResponse{Moved: moved})
	}
}

func listByShelterHandler(svc *Service) http.HandlerFunc {
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

		list, err := svc.ListByShelter(r.Context(), shelterID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]staffResponse, 0, len(list))
		for _, st := range list {
			out = append(out, toStaffResponse(st))
		}
		writeJSON(w, http.StatusOK, out)
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
	case errors.Is(err, ErrStaffNotFound), errors.Is(err, ErrShelterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyExists):
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
