package services

import (
	"context"
	"testing"

	"github.com/pollpulse/api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	fixture := newFixture(alice, bob)
	userService := NewUserService(fixture.userRepo, fixture.pollRepo, fixture.voteRepo)

	poll := fixture.createPoll(t, alice.ID, "Q?", "A", "B")
	_, err := fixture.service.CastVote(context.Background(), poll.ID, poll.Choices[0].ID, alice.ID)
	require.NoError(t, err)
	_, err = fixture.service.CastVote(context.Background(), poll.ID, poll.Choices[1].ID, bob.ID)
	require.NoError(t, err)

	profile, err := userService.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.ID)
	assert.Equal(t, int64(1), profile.PollCount)
	assert.Equal(t, int64(1), profile.VoteCount)

	_, err = userService.GetProfile(context.Background(), "nobody")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAvailabilityChecks(t *testing.T) {
	alice := testUser("alice")
	fixture := newFixture(alice)
	userService := NewUserService(fixture.userRepo, fixture.pollRepo, fixture.voteRepo)

	taken, err := userService.UsernameAvailable(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, taken)

	free, err := userService.UsernameAvailable(context.Background(), "zoe")
	require.NoError(t, err)
	assert.True(t, free)

	emailTaken, err := userService.EmailAvailable(context.Background(), alice.Email)
	require.NoError(t, err)
	assert.False(t, emailTaken)

	emailFree, err := userService.EmailAvailable(context.Background(), "zoe@example.com")
	require.NoError(t, err)
	assert.True(t, emailFree)
}
