package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type userService struct {
	userRepo ports.UserRepository
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewUserService(userRepo ports.UserRepository, pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.UserService {
	return &userService{
		userRepo: userRepo,
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User", "id", id)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User", "username", username)
	}

	pollCount, err := s.pollRepo.CountByCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	voteCount, err := s.voteRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		JoinedAt:  user.CreatedAt,
		PollCount: pollCount,
		VoteCount: voteCount,
	}, nil
}

func (s *userService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *userService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
