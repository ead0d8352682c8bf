package musicController

import (
	"context"
	"errors"
	"strings"

	"linkfolio/internal/logger"
	"linkfolio/internal/models"
	"linkfolio/internal/repositories"

	"github.com/google/uuid"
)

// MusicController handles the music track collection of a user.
type MusicController struct {
	trackRepo repositories.MusicTrackRepository
	log       logger.Logger
}

type MusicControllerInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.MusicTrack, error)
	Create(ctx context.Context, userID uuid.UUID, req models.CreateMusicTrackRequest) (*models.MusicTrack, error)
	Delete(ctx context.Context, userID, trackID uuid.UUID) error
	Reorder(ctx context.Context, userID uuid.UUID, items []models.ReorderItem) error
}

func New(trackRepo repositories.MusicTrackRepository) MusicControllerInterface {
	return &MusicController{
		trackRepo: trackRepo,
		log:       logger.New("musicController"),
	}
}

func (c *MusicController) List(ctx context.Context, userID uuid.UUID) ([]models.MusicTrack, error) {
	return c.trackRepo.ListByUser(ctx, userID)
}

func (c *MusicController) Create(
	ctx context.Context,
	userID uuid.UUID,
	req models.CreateMusicTrackRequest,
) (*models.MusicTrack, error) {
	log := c.log.Function("Create")

	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(req.TrackURL) == "" {
		return nil, errors.New("track url is required")
	}

	sortOrder, err := c.trackRepo.NextSortOrder(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to determine sort order", err, "userID", userID)
	}

	track := &models.MusicTrack{
		UserID:         userID,
		Title:          req.Title,
		Artist:         req.Artist,
		TrackURL:       req.TrackURL,
		SpotifyTrackID: req.SpotifyTrackID,
		SortOrder:      sortOrder,
		IsActive:       true,
	}

	if err := c.trackRepo.Create(ctx, track); err != nil {
		return nil, err
	}

	return track, nil
}

func (c *MusicController) Delete(ctx context.Context, userID, trackID uuid.UUID) error {
	return c.trackRepo.Delete(ctx, userID, trackID)
}

// Reorder mirrors the social link contract: owner-scoped concurrent updates,
// success regardless of per-item outcome.
func (c *MusicController) Reorder(
	ctx context.Context,
	userID uuid.UUID,
	items []models.ReorderItem,
) error {
	if len(items) == 0 {
		return nil
	}

	return c.trackRepo.UpdateSortOrders(ctx, userID, items)
}
