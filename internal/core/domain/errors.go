package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyVoted is the translated form of the (poll_id, user_id)
	// uniqueness violation; the raw storage error never leaves the repository.
	ErrAlreadyVoted = errors.New("user has already voted on this poll")

	// ErrPollExpired rejects votes cast at or after the poll's expiration.
	ErrPollExpired = errors.New("poll has expired and no longer accepts votes")
)

// ValidationError reports malformed input the caller can correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError identifies the missing entity by kind, field and value for
// diagnostics.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func NewNotFound(resource, field string, value any) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}
