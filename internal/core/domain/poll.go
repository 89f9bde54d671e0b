package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinChoices        = 2
	MaxChoices        = 6
	MaxQuestionLength = 140
)

// Poll is immutable after creation; it only accrues votes. Whether it still
// accepts votes is derived from ExpiresAt at read time, never stored.
type Poll struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Choices   []Choice  `json:"choices"`
}

type Choice struct {
	ID     uuid.UUID `json:"id" db:"id"`
	PollID uuid.UUID `json:"poll_id" db:"poll_id"`
	Text   string    `json:"text" db:"text"`
}

// Open reports whether the poll accepts votes at the given instant. Votes are
// accepted strictly before the expiration timestamp.
func (p *Poll) Open(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}
