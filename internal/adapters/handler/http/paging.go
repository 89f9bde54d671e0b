package http

import (
	"net/http"
	"strconv"

	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

// parsePage reads the page and size query parameters, falling back to page 0
// and the configured default size. Bounds are validated by the service.
func parsePage(r *http.Request, defaultSize int) (ports.PageInput, error) {
	page := ports.PageInput{Page: 0, Size: defaultSize}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.NewValidationError("page must be an integer")
		}
		page.Page = n
	}
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.NewValidationError("size must be an integer")
		}
		page.Size = n
	}
	return page, nil
}
