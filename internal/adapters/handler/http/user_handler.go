package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type UserHandler struct {
	userService     ports.UserService
	pollService     ports.PollService
	defaultPageSize int
}

func NewUserHandler(userService ports.UserService, pollService ports.PollService, defaultPageSize int) *UserHandler {
	return &UserHandler{
		userService:     userService,
		pollService:     pollService,
		defaultPageSize: defaultPageSize,
	}
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := ViewerID(r)
	if userID == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetByID(r.Context(), *userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Summary())
}

func (h *UserHandler) CheckUsernameAvailability(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondError(w, r, domain.NewValidationError("username is required"))
		return
	}

	available, err := h.userService.UsernameAvailable(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{Available: available})
}

func (h *UserHandler) CheckEmailAvailability(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, r, domain.NewValidationError("email is required"))
		return
	}

	available, err := h.userService.EmailAvailable(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{Available: available})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) ListPollsCreatedBy(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := parsePage(r, h.defaultPageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	polls, err := h.pollService.ListPollsCreatedBy(r.Context(), username, ViewerID(r), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, polls)
}

func (h *UserHandler) ListPollsVotedBy(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := parsePage(r, h.defaultPageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	polls, err := h.pollService.ListPollsVotedBy(r.Context(), username, ViewerID(r), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, polls)
}
