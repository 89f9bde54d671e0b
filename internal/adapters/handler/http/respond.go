package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pollpulse/api/internal/core/domain"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy to status codes. Anything
// outside the taxonomy is a storage-layer fault: logged and surfaced as a
// generic server error, never leaked to the caller.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: validationErr.Message})
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		respondJSON(w, http.StatusNotFound, errorResponse{Message: notFoundErr.Error()})
		return
	}

	if errors.Is(err, domain.ErrPollExpired) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	if errors.Is(err, domain.ErrAlreadyVoted) {
		respondJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
		return
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}
