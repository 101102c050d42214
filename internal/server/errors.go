package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/job-match-engine/internal/engine"
)

// HTTPStatus returns the appropriate HTTP status code for an engine error.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
