package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type pollRepository struct {
	db *sqlx.DB
}

func NewPollRepository(db *sqlx.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, question, created_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, queryPoll, poll.ID, poll.Question, poll.CreatedBy, poll.CreatedAt, poll.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	queryChoice := `
		INSERT INTO choices (id, poll_id, text, position)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryChoice)
	if err != nil {
		return fmt.Errorf("failed to prepare choice statement: %w", err)
	}
	defer stmt.Close()

	for i, choice := range poll.Choices {
		_, err = stmt.ExecContext(ctx, choice.ID, choice.PollID, choice.Text, i)
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, question, created_by, created_at, expires_at
		FROM polls
		WHERE id = $1
	`
	var poll domain.Poll
	err := r.db.GetContext(ctx, &poll, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("Poll", "id", id)
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	choices, err := r.fetchChoices(ctx, []uuid.UUID{poll.ID})
	if err != nil {
		return nil, err
	}
	poll.Choices = choices[poll.ID]

	return &poll, nil
}

func (r *pollRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Poll, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, question, created_by, created_at, expires_at
		FROM polls
		WHERE id IN (?)
		ORDER BY created_at DESC, id DESC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build polls query: %w", err)
	}

	var polls []*domain.Poll
	if err := r.db.SelectContext(ctx, &polls, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get polls: %w", err)
	}

	if err := r.attachChoices(ctx, polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM polls`); err != nil {
		return nil, 0, fmt.Errorf("failed to count polls: %w", err)
	}

	query := `
		SELECT id, question, created_by, created_at, expires_at
		FROM polls
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	var polls []*domain.Poll
	if err := r.db.SelectContext(ctx, &polls, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list polls: %w", err)
	}

	if err := r.attachChoices(ctx, polls); err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

func (r *pollRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Poll, int64, error) {
	total, err := r.CountByCreator(ctx, creatorID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, question, created_by, created_at, expires_at
		FROM polls
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	var polls []*domain.Poll
	if err := r.db.SelectContext(ctx, &polls, query, creatorID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list polls by creator: %w", err)
	}

	if err := r.attachChoices(ctx, polls); err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

// ListIDsVotedBy pages the polls a user voted in. Votes are unique per
// (poll, user), so each poll id appears at most once.
func (r *pollRepository) ListIDsVotedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM votes WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count votes by user: %w", err)
	}

	query := `
		SELECT v.poll_id
		FROM votes v
		JOIN polls p ON p.id = v.poll_id
		WHERE v.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	var pollIDs []uuid.UUID
	if err := r.db.SelectContext(ctx, &pollIDs, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list polls voted by user: %w", err)
	}
	return pollIDs, total, nil
}

func (r *pollRepository) CountByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM polls WHERE created_by = $1`, creatorID); err != nil {
		return 0, fmt.Errorf("failed to count polls by creator: %w", err)
	}
	return total, nil
}

func (r *pollRepository) attachChoices(ctx context.Context, polls []*domain.Poll) error {
	if len(polls) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(polls))
	for _, poll := range polls {
		ids = append(ids, poll.ID)
	}

	choices, err := r.fetchChoices(ctx, ids)
	if err != nil {
		return err
	}
	for _, poll := range polls {
		poll.Choices = choices[poll.ID]
	}
	return nil
}

// fetchChoices loads the choices of all given polls in one query, preserving
// each poll's creation order.
func (r *pollRepository) fetchChoices(ctx context.Context, pollIDs []uuid.UUID) (map[uuid.UUID][]domain.Choice, error) {
	query, args, err := sqlx.In(`
		SELECT id, poll_id, text
		FROM choices
		WHERE poll_id IN (?)
		ORDER BY poll_id, position
	`, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build choices query: %w", err)
	}

	var choices []domain.Choice
	if err := r.db.SelectContext(ctx, &choices, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get choices: %w", err)
	}

	byPoll := make(map[uuid.UUID][]domain.Choice, len(pollIDs))
	for _, choice := range choices {
		byPoll[choice.PollID] = append(byPoll[choice.PollID], choice)
	}
	return byPoll, nil
}
