package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type PollHandler struct {
	service         ports.PollService
	defaultPageSize int
}

func NewPollHandler(service ports.PollService, defaultPageSize int) *PollHandler {
	return &PollHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
	}
}

type createPollRequest struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	LengthDays  int      `json:"length_days"`
	LengthHours int      `json:"length_hours"`
}

type voteRequest struct {
	ChoiceID uuid.UUID `json:"choice_id"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	creatorID := ViewerID(r)
	if creatorID == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	input := ports.CreatePollInput{
		Question:    req.Question,
		Choices:     req.Choices,
		LengthDays:  req.LengthDays,
		LengthHours: req.LengthHours,
	}

	poll, err := h.service.Create(r.Context(), input, *creatorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/polls/%s", poll.ID))
	respondJSON(w, http.StatusCreated, apiResponse{Success: true, Message: "poll created successfully"})
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, h.defaultPageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	polls, err := h.service.ListPolls(r.Context(), ViewerID(r), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, polls)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "pollID"))
	if err != nil {
		respondError(w, r, domain.NewValidationError("invalid poll id"))
		return
	}

	view, err := h.service.GetPoll(r.Context(), pollID, ViewerID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "pollID"))
	if err != nil {
		respondError(w, r, domain.NewValidationError("invalid poll id"))
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if req.ChoiceID == uuid.Nil {
		respondError(w, r, domain.NewValidationError("choice_id is required"))
		return
	}

	voterID := ViewerID(r)
	if voterID == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	view, err := h.service.CastVote(r.Context(), pollID, req.ChoiceID, *voterID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}
