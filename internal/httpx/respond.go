package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-orders/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps the domain error taxonomy onto HTTP statuses: conflicts
// to 409, the not-found family to 404, validation to 400, the rest to 500.
func WriteError(w http.ResponseWriter, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrActiveSessionExists):
		WriteJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNoActiveTableSession),
		errors.Is(err, domain.ErrNoActiveSessions),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrOrderItemNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrNoPendingOrders):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &vErr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: vErr.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
