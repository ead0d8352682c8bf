package repositories

import (
	"context"
	"sync"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
)

type MusicTrackRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]MusicTrack, error)
	Create(ctx context.Context, track *MusicTrack) error
	Delete(ctx context.Context, userID, trackID uuid.UUID) error
	NextSortOrder(ctx context.Context, userID uuid.UUID) (int, error)
	UpdateSortOrders(ctx context.Context, userID uuid.UUID, items []ReorderItem) error
}

type musicTrackRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMusicTrackRepository(db database.DB) MusicTrackRepository {
	return &musicTrackRepository{
		db:  db,
		log: logger.New("musicTrackRepository"),
	}
}

func (r *musicTrackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]MusicTrack, error) {
	log := r.log.Function("ListByUser")

	var tracks []MusicTrack
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order asc").
		Find(&tracks).Error; err != nil {
		return nil, log.Err("failed to list music tracks", err, "userID", userID)
	}

	return tracks, nil
}

func (r *musicTrackRepository) Create(ctx context.Context, track *MusicTrack) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(track).Error; err != nil {
		return log.Err("failed to create music track", err, "userID", track.UserID)
	}

	return nil
}

func (r *musicTrackRepository) Delete(ctx context.Context, userID, trackID uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).
		Delete(&MusicTrack{}, "id = ? AND user_id = ?", trackID, userID).Error; err != nil {
		return log.Err("failed to delete music track", err, "trackID", trackID)
	}

	return nil
}

func (r *musicTrackRepository) NextSortOrder(ctx context.Context, userID uuid.UUID) (int, error) {
	log := r.log.Function("NextSortOrder")

	var max *int
	if err := r.db.SQLWithContext(ctx).Model(&MusicTrack{}).
		Where("user_id = ?", userID).
		Select("max(sort_order)").
		Scan(&max).Error; err != nil {
		return 0, log.Err("failed to get max sort order", err, "userID", userID)
	}

	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// UpdateSortOrders mirrors SocialLinkRepository.UpdatePositions: one
// owner-scoped update per item, dispatched concurrently, per-item failures
// logged and never surfaced.
func (r *musicTrackRepository) UpdateSortOrders(
	ctx context.Context,
	userID uuid.UUID,
	items []ReorderItem,
) error {
	log := r.log.Function("UpdateSortOrders")

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item ReorderItem) {
			defer wg.Done()
			result := r.db.SQLWithContext(ctx).Model(&MusicTrack{}).
				Where("id = ? AND user_id = ?", item.ID, userID).
				Update("sort_order", item.SortOrder)
			if result.Error != nil {
				log.Er("failed to update track sort order", result.Error,
					"trackID", item.ID, "userID", userID)
			}
		}(item)
	}
	wg.Wait()

	return nil
}
