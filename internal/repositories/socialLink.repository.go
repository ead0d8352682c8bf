package repositories

import (
	"context"
	"errors"
	"sync"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SocialLinkRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SocialLink, error)
	ListPublicByUser(ctx context.Context, userID uuid.UUID) ([]SocialLink, error)
	ListPublicByLegacyOwner(ctx context.Context, ownerID uuid.UUID) ([]SocialLink, error)
	Create(ctx context.Context, link *SocialLink) error
	Update(ctx context.Context, userID uuid.UUID, link *SocialLink) error
	Delete(ctx context.Context, userID, linkID uuid.UUID) error
	GetOwned(ctx context.Context, userID, linkID uuid.UUID) (*SocialLink, error)
	NextPosition(ctx context.Context, userID uuid.UUID) (int, error)
	UpdatePositions(ctx context.Context, userID uuid.UUID, items []ReorderItem) error
}

type socialLinkRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSocialLinkRepository(db database.DB) SocialLinkRepository {
	return &socialLinkRepository{
		db:  db,
		log: logger.New("socialLinkRepository"),
	}
}

func (r *socialLinkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]SocialLink, error) {
	log := r.log.Function("ListByUser")

	var links []SocialLink
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&links).Error; err != nil {
		return nil, log.Err("failed to list social links", err, "userID", userID)
	}

	return links, nil
}

// ListPublicByUser returns active links owned via user_id, ordered by position.
func (r *socialLinkRepository) ListPublicByUser(ctx context.Context, userID uuid.UUID) ([]SocialLink, error) {
	log := r.log.Function("ListPublicByUser")

	var links []SocialLink
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("position asc").
		Find(&links).Error; err != nil {
		return nil, log.Err("failed to list public social links", err, "userID", userID)
	}

	return links, nil
}

// ListPublicByLegacyOwner queries the pre-migration profile_id owner key.
func (r *socialLinkRepository) ListPublicByLegacyOwner(ctx context.Context, ownerID uuid.UUID) ([]SocialLink, error) {
	log := r.log.Function("ListPublicByLegacyOwner")

	var links []SocialLink
	if err := r.db.SQLWithContext(ctx).
		Where("profile_id = ? AND is_active = ?", ownerID, true).
		Order("position asc").
		Find(&links).Error; err != nil {
		return nil, log.Err("failed to list legacy social links", err, "ownerID", ownerID)
	}

	return links, nil
}

func (r *socialLinkRepository) Create(ctx context.Context, link *SocialLink) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(link).Error; err != nil {
		return log.Err("failed to create social link", err, "userID", link.UserID)
	}

	return nil
}

func (r *socialLinkRepository) GetOwned(ctx context.Context, userID, linkID uuid.UUID) (*SocialLink, error) {
	log := r.log.Function("GetOwned")

	var link SocialLink
	if err := r.db.SQLWithContext(ctx).
		First(&link, "id = ? AND user_id = ?", linkID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get social link", err, "linkID", linkID, "userID", userID)
	}

	return &link, nil
}

func (r *socialLinkRepository) Update(ctx context.Context, userID uuid.UUID, link *SocialLink) error {
	log := r.log.Function("Update")

	result := r.db.SQLWithContext(ctx).Model(&SocialLink{}).
		Where("id = ? AND user_id = ?", link.ID, userID).
		Updates(map[string]any{
			"platform":  link.Platform,
			"label":     link.Label,
			"url":       link.URL,
			"is_active": link.IsActive,
		})
	if result.Error != nil {
		return log.Err("failed to update social link", result.Error, "linkID", link.ID)
	}

	return nil
}

func (r *socialLinkRepository) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).
		Delete(&SocialLink{}, "id = ? AND user_id = ?", linkID, userID).Error; err != nil {
		return log.Err("failed to delete social link", err, "linkID", linkID)
	}

	return nil
}

func (r *socialLinkRepository) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	log := r.log.Function("NextPosition")

	var max *int
	if err := r.db.SQLWithContext(ctx).Model(&SocialLink{}).
		Where("user_id = ?", userID).
		Select("max(position)").
		Scan(&max).Error; err != nil {
		return 0, log.Err("failed to get max position", err, "userID", userID)
	}

	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// UpdatePositions dispatches one owner-scoped update per item, all
// concurrently. An id not owned by userID matches zero rows and is silently a
// no-op. Per-item failures are logged but never surfaced; the call reports
// success once every update has settled.
func (r *socialLinkRepository) UpdatePositions(
	ctx context.Context,
	userID uuid.UUID,
	items []ReorderItem,
) error {
	log := r.log.Function("UpdatePositions")

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item ReorderItem) {
			defer wg.Done()
			result := r.db.SQLWithContext(ctx).Model(&SocialLink{}).
				Where("id = ? AND user_id = ?", item.ID, userID).
				Update("position", item.SortOrder)
			if result.Error != nil {
				log.Er("failed to update link position", result.Error,
					"linkID", item.ID, "userID", userID)
			}
		}(item)
	}
	wg.Wait()

	return nil
}
