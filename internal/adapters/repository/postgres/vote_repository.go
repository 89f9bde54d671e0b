package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

// uniqueViolation is the postgres error code raised when the
// (poll_id, user_id) constraint rejects a second vote.
const uniqueViolation = "23505"

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, choice_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.PollID, vote.ChoiceID, vote.UserID, vote.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (r *voteRepository) CountByChoice(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT choice_id, COUNT(*) AS vote_count
		FROM votes
		WHERE poll_id = $1
		GROUP BY choice_id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	return scanChoiceCounts(rows)
}

func (r *voteRepository) CountByChoiceIn(ctx context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(pollIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT choice_id, COUNT(*) AS vote_count
		FROM votes
		WHERE poll_id IN (?)
		GROUP BY choice_id
	`, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build vote count query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	return scanChoiceCounts(rows)
}

func (r *voteRepository) FindUserVote(ctx context.Context, userID, pollID uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, choice_id, user_id, created_at
		FROM votes
		WHERE user_id = $1 AND poll_id = $2
	`
	var vote domain.Vote
	err := r.db.GetContext(ctx, &vote, query, userID, pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user vote: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) FindUserVotesIn(ctx context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	if len(pollIDs) == 0 {
		return map[uuid.UUID]uuid.UUID{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT poll_id, choice_id
		FROM votes
		WHERE user_id = ? AND poll_id IN (?)
	`, userID, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build user votes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user votes: %w", err)
	}
	defer rows.Close()

	votes := make(map[uuid.UUID]uuid.UUID)
	for rows.Next() {
		var pollID, choiceID uuid.UUID
		if err := rows.Scan(&pollID, &choiceID); err != nil {
			return nil, fmt.Errorf("failed to scan user vote: %w", err)
		}
		votes[pollID] = choiceID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM votes WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to count votes by user: %w", err)
	}
	return total, nil
}

func scanChoiceCounts(rows *sql.Rows) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var choiceID uuid.UUID
		var count int64
		if err := rows.Scan(&choiceID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[choiceID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}
