package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// VoteRepository is the sole writer of vote rows. The batched forms exist so a
// page of N polls costs one grouped count query and one viewer-vote query, not
// N of each.
type VoteRepository interface {
	// Insert atomically creates the vote, returning domain.ErrAlreadyVoted
	// when the (poll_id, user_id) uniqueness constraint rejects it.
	Insert(ctx context.Context, vote *domain.Vote) error
	CountByChoice(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
	CountByChoiceIn(ctx context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// FindUserVote returns nil when the user has not voted in the poll.
	FindUserVote(ctx context.Context, userID, pollID uuid.UUID) (*domain.Vote, error)
	// FindUserVotesIn maps poll id to the choice the user picked, for polls the
	// user voted in among pollIDs.
	FindUserVotesIn(ctx context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
