package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

type UserRepository interface {
	// GetByID and GetByUsername return nil without error when no user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByIDs batches creator lookups for listing pages.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}
