package jobs

import (
	"context"
	"testing"
	"time"

	"linkfolio/config"
	"linkfolio/internal/models"
	"linkfolio/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	expiring   []models.Profile
	findCalled bool
	findWithin time.Duration
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, _ *models.Profile) error { return nil }

func (f *fakeProfileRepo) Update(_ context.Context, _ *models.Profile) error { return nil }

func (f *fakeProfileRepo) SetSpotifyConnection(_ context.Context, _ uuid.UUID, _ models.SpotifyConnection) error {
	return nil
}

func (f *fakeProfileRepo) ClearSpotifyConnection(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeProfileRepo) SetDiscordConnection(_ context.Context, _ uuid.UUID, _, _ string) error {
	return nil
}

func (f *fakeProfileRepo) FindExpiringSpotifyTokens(_ context.Context, within time.Duration) ([]models.Profile, error) {
	f.findCalled = true
	f.findWithin = within
	return f.expiring, nil
}

func TestSpotifyTokenRefreshJob_Metadata(t *testing.T) {
	job := NewSpotifyTokenRefreshJob(&fakeProfileRepo{}, services.NewSpotifyService(config.Config{}), services.Hourly)

	assert.Equal(t, "spotify-token-refresh", job.Name())
	assert.Equal(t, services.Hourly, job.Schedule())
}

func TestSpotifyTokenRefreshJob_NothingExpiring(t *testing.T) {
	repo := &fakeProfileRepo{}
	job := NewSpotifyTokenRefreshJob(repo, services.NewSpotifyService(config.Config{}), services.Hourly)

	require.NoError(t, job.Execute(context.Background()))
	assert.True(t, repo.findCalled)
	assert.Equal(t, refreshWindow, repo.findWithin)
}
