package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// buildPollView folds raw poll, per-choice vote counts, creator and the
// viewer's own vote (if any) into the response view. Pure transform: a choice
// absent from voteCounts simply has zero votes, and totalVotes is derived from
// the per-choice breakdown so the two can never disagree.
func buildPollView(poll *domain.Poll, voteCounts map[uuid.UUID]int64, creator *domain.User, selectedChoiceID *uuid.UUID, now time.Time) domain.PollView {
	choices := make([]domain.ChoiceView, 0, len(poll.Choices))
	var totalVotes int64
	for _, choice := range poll.Choices {
		count := voteCounts[choice.ID]
		totalVotes += count
		choices = append(choices, domain.ChoiceView{
			ID:        choice.ID,
			Text:      choice.Text,
			VoteCount: count,
		})
	}

	return domain.PollView{
		ID:               poll.ID,
		Question:         poll.Question,
		CreatedAt:        poll.CreatedAt,
		ExpiresAt:        poll.ExpiresAt,
		IsExpired:        !poll.Open(now),
		Choices:          choices,
		TotalVotes:       totalVotes,
		CreatedBy:        creator.Summary(),
		SelectedChoiceID: selectedChoiceID,
	}
}
