package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollView is the aggregated, read-optimized representation of a poll.
// SelectedChoiceID is nil (and omitted from JSON) when the viewer is anonymous
// or has not voted, so consumers can tell "no vote" apart from any real choice.
type PollView struct {
	ID               uuid.UUID    `json:"id"`
	Question         string       `json:"question"`
	CreatedAt        time.Time    `json:"created_at"`
	ExpiresAt        time.Time    `json:"expires_at"`
	IsExpired        bool         `json:"is_expired"`
	Choices          []ChoiceView `json:"choices"`
	TotalVotes       int64        `json:"total_votes"`
	CreatedBy        UserSummary  `json:"created_by"`
	SelectedChoiceID *uuid.UUID   `json:"selected_choice_id,omitempty"`
}

type ChoiceView struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	VoteCount int64     `json:"vote_count"`
}

type PagedPolls struct {
	Content       []PollView `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
	Last          bool       `json:"last"`
}
