package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type pollService struct {
	pollRepo    ports.PollRepository
	voteRepo    ports.VoteRepository
	userRepo    ports.UserRepository
	maxPageSize int
}

func NewPollService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, userRepo ports.UserRepository, maxPageSize int) ports.PollService {
	return &pollService{
		pollRepo:    pollRepo,
		voteRepo:    voteRepo,
		userRepo:    userRepo,
		maxPageSize: maxPageSize,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput, creatorID uuid.UUID) (*domain.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domain.NewValidationError("question must not be blank")
	}
	// Characters, not bytes: the question column is VARCHAR(140).
	if utf8.RuneCountInString(question) > domain.MaxQuestionLength {
		return nil, domain.NewValidationError("question must not exceed %d characters", domain.MaxQuestionLength)
	}
	if len(input.Choices) < domain.MinChoices || len(input.Choices) > domain.MaxChoices {
		return nil, domain.NewValidationError("a poll must have between %d and %d choices", domain.MinChoices, domain.MaxChoices)
	}
	for _, text := range input.Choices {
		if strings.TrimSpace(text) == "" {
			return nil, domain.NewValidationError("choice text must not be blank")
		}
	}
	if input.LengthDays < 0 || input.LengthHours < 0 {
		return nil, domain.NewValidationError("poll length must not be negative")
	}
	if input.LengthDays == 0 && input.LengthHours == 0 {
		return nil, domain.NewValidationError("poll length must be greater than zero")
	}

	pollID := uuid.New()
	now := time.Now()
	length := time.Duration(input.LengthDays)*24*time.Hour + time.Duration(input.LengthHours)*time.Hour

	poll := &domain.Poll{
		ID:        pollID,
		Question:  question,
		CreatedBy: creatorID,
		CreatedAt: now,
		ExpiresAt: now.Add(length),
	}
	for _, text := range input.Choices {
		poll.Choices = append(poll.Choices, domain.Choice{
			ID:     uuid.New(),
			PollID: pollID,
			Text:   strings.TrimSpace(text),
		})
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, pollID uuid.UUID, viewerID *uuid.UUID) (*domain.PollView, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteRepo.CountByChoice(ctx, pollID)
	if err != nil {
		return nil, err
	}

	creator, err := s.creator(ctx, poll.CreatedBy)
	if err != nil {
		return nil, err
	}

	var selected *uuid.UUID
	if viewerID != nil {
		vote, err := s.voteRepo.FindUserVote(ctx, *viewerID, pollID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			selected = &vote.ChoiceID
		}
	}

	view := buildPollView(poll, counts, creator, selected, time.Now())
	return &view, nil
}

func (s *pollService) CastVote(ctx context.Context, pollID, choiceID, voterID uuid.UUID) (*domain.PollView, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if !poll.Open(time.Now()) {
		return nil, domain.ErrPollExpired
	}

	validChoice := false
	for _, choice := range poll.Choices {
		if choice.ID == choiceID {
			validChoice = true
			break
		}
	}
	if !validChoice {
		return nil, domain.NewNotFound("Choice", "id", choiceID)
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		PollID:    pollID,
		ChoiceID:  choiceID,
		UserID:    voterID,
		CreatedAt: time.Now(),
	}
	// The insert is the only mutual exclusion: the storage constraint decides
	// which of two racing votes wins, and the loser surfaces as ErrAlreadyVoted.
	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		return nil, err
	}

	// Recompute after the insert so the returned view reflects the caller's
	// own just-cast vote.
	counts, err := s.voteRepo.CountByChoice(ctx, pollID)
	if err != nil {
		return nil, err
	}
	creator, err := s.creator(ctx, poll.CreatedBy)
	if err != nil {
		return nil, err
	}

	view := buildPollView(poll, counts, creator, &vote.ChoiceID, time.Now())
	return &view, nil
}

func (s *pollService) ListPolls(ctx context.Context, viewerID *uuid.UUID, page ports.PageInput) (*domain.PagedPolls, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}

	polls, total, err := s.pollRepo.List(ctx, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}
	return s.pagedViews(ctx, polls, total, viewerID, page)
}

func (s *pollService) ListPollsCreatedBy(ctx context.Context, username string, viewerID *uuid.UUID, page ports.PageInput) (*domain.PagedPolls, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}

	user, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	polls, total, err := s.pollRepo.ListByCreator(ctx, user.ID, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}
	return s.pagedViews(ctx, polls, total, viewerID, page)
}

func (s *pollService) ListPollsVotedBy(ctx context.Context, username string, viewerID *uuid.UUID, page ports.PageInput) (*domain.PagedPolls, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}

	user, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	pollIDs, total, err := s.pollRepo.ListIDsVotedBy(ctx, user.ID, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}

	var polls []*domain.Poll
	if len(pollIDs) > 0 {
		polls, err = s.pollRepo.GetByIDs(ctx, pollIDs)
		if err != nil {
			return nil, err
		}
	}
	return s.pagedViews(ctx, polls, total, viewerID, page)
}

func (s *pollService) validatePage(page ports.PageInput) error {
	if page.Page < 0 {
		return domain.NewValidationError("page number cannot be less than zero")
	}
	if page.Size < 1 {
		return domain.NewValidationError("page size must be at least one")
	}
	if page.Size > s.maxPageSize {
		return domain.NewValidationError("page size must not be greater than %d", s.maxPageSize)
	}
	return nil
}

// pagedViews aggregates a page of polls with a bounded number of queries:
// one grouped vote count, one viewer-vote lookup and one creator lookup,
// regardless of the page length.
func (s *pollService) pagedViews(ctx context.Context, polls []*domain.Poll, total int64, viewerID *uuid.UUID, page ports.PageInput) (*domain.PagedPolls, error) {
	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	resp := &domain.PagedPolls{
		Content:       []domain.PollView{},
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          totalPages == 0 || page.Page+1 >= totalPages,
	}
	if len(polls) == 0 {
		return resp, nil
	}

	pollIDs := make([]uuid.UUID, 0, len(polls))
	creatorIDSet := make(map[uuid.UUID]struct{})
	for _, poll := range polls {
		pollIDs = append(pollIDs, poll.ID)
		creatorIDSet[poll.CreatedBy] = struct{}{}
	}

	counts, err := s.voteRepo.CountByChoiceIn(ctx, pollIDs)
	if err != nil {
		return nil, err
	}

	viewerVotes := map[uuid.UUID]uuid.UUID{}
	if viewerID != nil {
		viewerVotes, err = s.voteRepo.FindUserVotesIn(ctx, *viewerID, pollIDs)
		if err != nil {
			return nil, err
		}
	}

	creatorIDs := make([]uuid.UUID, 0, len(creatorIDSet))
	for id := range creatorIDSet {
		creatorIDs = append(creatorIDs, id)
	}
	creators, err := s.userRepo.GetByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}
	creatorsByID := make(map[uuid.UUID]*domain.User, len(creators))
	for _, creator := range creators {
		creatorsByID[creator.ID] = creator
	}

	now := time.Now()
	for _, poll := range polls {
		creator, ok := creatorsByID[poll.CreatedBy]
		if !ok {
			return nil, domain.NewNotFound("User", "id", poll.CreatedBy)
		}

		var selected *uuid.UUID
		if choiceID, ok := viewerVotes[poll.ID]; ok {
			chosen := choiceID
			selected = &chosen
		}

		resp.Content = append(resp.Content, buildPollView(poll, counts, creator, selected, now))
	}
	return resp, nil
}

func (s *pollService) creator(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("User", "id", id)
	}
	return user, nil
}

func (s *pollService) userByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("User", "username", username)
	}
	return user, nil
}
