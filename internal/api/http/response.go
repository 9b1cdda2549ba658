package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type validationBody struct {
	Errors []domain.FieldError `json:"errors"`
}

// respondError maps the domain error taxonomy onto HTTP statuses. A lost
// availability race gets a 409 with a message the storefront can show
// as-is, distinct from field-level 400s, so the user is told to re-pick
// dates rather than fix their input.
func respondError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusBadRequest, validationBody{Errors: ve.Fields})
		return
	}

	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		respondJSON(w, http.StatusConflict, errorBody{Error: "These dates were just booked by someone else. Please pick different dates or another vehicle."})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrBlacklisted):
		respondJSON(w, http.StatusForbidden, errorBody{Error: "booking cannot be accepted for this customer"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid email or password"})
	default:
		logger.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return false
	}
	return true
}
