package musicController

import (
	"context"
	"testing"

	"linkfolio/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMusicTrackRepo struct {
	tracks        map[uuid.UUID]*models.MusicTrack
	nextSortOrder int
	reorderedWith []models.ReorderItem
	reorderCalls  int
}

func newFakeMusicTrackRepo() *fakeMusicTrackRepo {
	return &fakeMusicTrackRepo{
		tracks:        make(map[uuid.UUID]*models.MusicTrack),
		nextSortOrder: 1,
	}
}

func (f *fakeMusicTrackRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.MusicTrack, error) {
	var result []models.MusicTrack
	for _, track := range f.tracks {
		if track.UserID == userID {
			result = append(result, *track)
		}
	}
	return result, nil
}

func (f *fakeMusicTrackRepo) Create(_ context.Context, track *models.MusicTrack) error {
	track.ID = uuid.New()
	f.tracks[track.ID] = track
	return nil
}

func (f *fakeMusicTrackRepo) Delete(_ context.Context, userID, trackID uuid.UUID) error {
	if existing, ok := f.tracks[trackID]; ok && existing.UserID == userID {
		delete(f.tracks, trackID)
	}
	return nil
}

func (f *fakeMusicTrackRepo) NextSortOrder(_ context.Context, _ uuid.UUID) (int, error) {
	return f.nextSortOrder, nil
}

func (f *fakeMusicTrackRepo) UpdateSortOrders(_ context.Context, _ uuid.UUID, items []models.ReorderItem) error {
	f.reorderCalls++
	f.reorderedWith = items
	return nil
}

func TestMusicController_CreateValidation(t *testing.T) {
	controller := New(newFakeMusicTrackRepo())
	userID := uuid.New()

	testCases := []struct {
		name    string
		req     models.CreateMusicTrackRequest
		wantErr string
	}{
		{
			name:    "missing title",
			req:     models.CreateMusicTrackRequest{TrackURL: "https://open.spotify.com/track/x"},
			wantErr: "title is required",
		},
		{
			name:    "missing track url",
			req:     models.CreateMusicTrackRequest{Title: "Song"},
			wantErr: "track url is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := controller.Create(context.Background(), userID, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestMusicController_CreateAppendsAtNextSortOrder(t *testing.T) {
	repo := newFakeMusicTrackRepo()
	repo.nextSortOrder = 7
	controller := New(repo)
	userID := uuid.New()

	track, err := controller.Create(context.Background(), userID, models.CreateMusicTrackRequest{
		Title:    "Song",
		Artist:   "Artist",
		TrackURL: "https://open.spotify.com/track/x",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, track.UserID)
	assert.Equal(t, 7, track.SortOrder)
	assert.True(t, track.IsActive)
}

func TestMusicController_Reorder(t *testing.T) {
	repo := newFakeMusicTrackRepo()
	controller := New(repo)
	userID := uuid.New()

	require.NoError(t, controller.Reorder(context.Background(), userID, nil))
	assert.Equal(t, 0, repo.reorderCalls)

	items := []models.ReorderItem{{ID: uuid.New(), SortOrder: 1}}
	require.NoError(t, controller.Reorder(context.Background(), userID, items))
	assert.Equal(t, 1, repo.reorderCalls)
	assert.Equal(t, items, repo.reorderedWith)
}
