package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// PollRepository persists polls and serves the paginated listing queries.
// All listing queries order by created_at descending with id descending as the
// tiebreak, so pagination is deterministic across pages.
type PollRepository interface {
	// Save persists the poll and its choices as one atomic unit.
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetByIDs returns the polls for the given ids in listing order.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, int64, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Poll, int64, error)
	// ListIDsVotedBy pages the distinct polls the user has voted in, driven by
	// vote rows, not by poll ownership.
	ListIDsVotedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error)
	CountByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
}

type CreatePollInput struct {
	Question    string
	Choices     []string
	LengthDays  int
	LengthHours int
}

type PageInput struct {
	Page int
	Size int
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput, creatorID uuid.UUID) (*domain.Poll, error)
	GetPoll(ctx context.Context, pollID uuid.UUID, viewerID *uuid.UUID) (*domain.PollView, error)
	CastVote(ctx context.Context, pollID, choiceID, voterID uuid.UUID) (*domain.PollView, error)
	ListPolls(ctx context.Context, viewerID *uuid.UUID, page PageInput) (*domain.PagedPolls, error)
	ListPollsCreatedBy(ctx context.Context, username string, viewerID *uuid.UUID, page PageInput) (*domain.PagedPolls, error)
	ListPollsVotedBy(ctx context.Context, username string, viewerID *uuid.UUID, page PageInput) (*domain.PagedPolls, error)
}
