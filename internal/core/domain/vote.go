package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote permanently binds a user to one choice within one poll. At most one
// vote exists per (poll, user) pair; the votes table enforces it with a
// uniqueness constraint so the guarantee holds under concurrent writers.
type Vote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PollID    uuid.UUID `json:"poll_id" db:"poll_id"`
	ChoiceID  uuid.UUID `json:"choice_id" db:"choice_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
