package services

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// In-memory fakes implementing the repository ports. The vote fake enforces
// the (poll, user) uniqueness the same way the storage constraint does, and
// the fakes count batched calls so tests can assert the per-page query bound.

type fakePollRepo struct {
	polls map[uuid.UUID]*domain.Poll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	stored := *poll
	stored.Choices = append([]domain.Choice(nil), poll.Choices...)
	r.polls[poll.ID] = &stored
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.NewNotFound("Poll", "id", id)
	}
	copied := *poll
	return &copied, nil
}

func (r *fakePollRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, id := range ids {
		if poll, ok := r.polls[id]; ok {
			copied := *poll
			polls = append(polls, &copied)
		}
	}
	sortPollsDesc(polls)
	return polls, nil
}

func (r *fakePollRepo) List(_ context.Context, limit, offset int) ([]*domain.Poll, int64, error) {
	all := r.sorted(func(*domain.Poll) bool { return true })
	return pagePolls(all, limit, offset), int64(len(all)), nil
}

func (r *fakePollRepo) ListByCreator(_ context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Poll, int64, error) {
	all := r.sorted(func(p *domain.Poll) bool { return p.CreatedBy == creatorID })
	return pagePolls(all, limit, offset), int64(len(all)), nil
}

func (r *fakePollRepo) ListIDsVotedBy(_ context.Context, _ uuid.UUID, _, _ int) ([]uuid.UUID, int64, error) {
	// Tests needing this wrap the repo in votedByPollRepo.
	panic("wire votedBy through fakeVoteRepo")
}

func (r *fakePollRepo) CountByCreator(_ context.Context, creatorID uuid.UUID) (int64, error) {
	var n int64
	for _, poll := range r.polls {
		if poll.CreatedBy == creatorID {
			n++
		}
	}
	return n, nil
}

func (r *fakePollRepo) sorted(keep func(*domain.Poll) bool) []*domain.Poll {
	var polls []*domain.Poll
	for _, poll := range r.polls {
		if keep(poll) {
			copied := *poll
			polls = append(polls, &copied)
		}
	}
	sortPollsDesc(polls)
	return polls
}

func sortPollsDesc(polls []*domain.Poll) {
	sort.Slice(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return bytes.Compare(polls[i].ID[:], polls[j].ID[:]) > 0
	})
}

func pagePolls(polls []*domain.Poll, limit, offset int) []*domain.Poll {
	if offset >= len(polls) {
		return nil
	}
	end := offset + limit
	if end > len(polls) {
		end = len(polls)
	}
	return polls[offset:end]
}

// votedByPollRepo overlays ListIDsVotedBy on top of a fakePollRepo using the
// vote fake as the source of vote rows.
type votedByPollRepo struct {
	*fakePollRepo
	votes *fakeVoteRepo
}

func (r *votedByPollRepo) ListIDsVotedBy(_ context.Context, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	var voted []*domain.Poll
	for _, vote := range r.votes.votes {
		if vote.UserID != userID {
			continue
		}
		if poll, ok := r.polls[vote.PollID]; ok {
			copied := *poll
			voted = append(voted, &copied)
		}
	}
	sortPollsDesc(voted)
	total := int64(len(voted))

	var ids []uuid.UUID
	for _, poll := range pagePolls(voted, limit, offset) {
		ids = append(ids, poll.ID)
	}
	return ids, total, nil
}

type fakeVoteRepo struct {
	votes []*domain.Vote

	countBatchCalls     int
	userVotesBatchCalls int
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (r *fakeVoteRepo) Insert(_ context.Context, vote *domain.Vote) error {
	for _, existing := range r.votes {
		if existing.PollID == vote.PollID && existing.UserID == vote.UserID {
			return domain.ErrAlreadyVoted
		}
	}
	copied := *vote
	r.votes = append(r.votes, &copied)
	return nil
}

func (r *fakeVoteRepo) CountByChoice(_ context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, vote := range r.votes {
		if vote.PollID == pollID {
			counts[vote.ChoiceID]++
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) CountByChoiceIn(_ context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.countBatchCalls++
	counts := make(map[uuid.UUID]int64)
	for _, vote := range r.votes {
		for _, pollID := range pollIDs {
			if vote.PollID == pollID {
				counts[vote.ChoiceID]++
			}
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) FindUserVote(_ context.Context, userID, pollID uuid.UUID) (*domain.Vote, error) {
	for _, vote := range r.votes {
		if vote.UserID == userID && vote.PollID == pollID {
			copied := *vote
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeVoteRepo) FindUserVotesIn(_ context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	r.userVotesBatchCalls++
	votes := make(map[uuid.UUID]uuid.UUID)
	for _, vote := range r.votes {
		if vote.UserID != userID {
			continue
		}
		for _, pollID := range pollIDs {
			if vote.PollID == pollID {
				votes[vote.PollID] = vote.ChoiceID
			}
		}
	}
	return votes, nil
}

func (r *fakeVoteRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, vote := range r.votes {
		if vote.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User

	getByIDsCalls int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	r.getByIDsCalls++
	var users []*domain.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
