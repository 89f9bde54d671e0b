package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is owned by the authentication subsystem; this service only reads it.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the public shape of a user embedded in responses. It never
// carries the email.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	JoinedAt  time.Time `json:"joined_at"`
	PollCount int64     `json:"poll_count"`
	VoteCount int64     `json:"vote_count"`
}
