package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// queryID parses an id from query params; 0 means absent/invalid.
func queryID(r *http.Request, key string) uint {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}
