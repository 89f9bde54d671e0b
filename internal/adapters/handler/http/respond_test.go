package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pollpulse/api/internal/core/domain"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("page size must be at least one"), http.StatusBadRequest},
		{"poll not found", domain.NewNotFound("Poll", "id", uuid.New()), http.StatusNotFound},
		{"choice of another poll", domain.NewNotFound("Choice", "id", uuid.New()), http.StatusNotFound},
		{"expired", domain.ErrPollExpired, http.StatusBadRequest},
		{"already voted", domain.ErrAlreadyVoted, http.StatusConflict},
		{"storage fault", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/polls", nil)

			respondError(rec, req, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
