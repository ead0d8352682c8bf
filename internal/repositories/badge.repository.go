package repositories

import (
	"context"
	"errors"
	"time"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	GetByName(ctx context.Context, name string) (*Badge, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]UserBadge, error)
	Assign(ctx context.Context, userID uuid.UUID, badgeID int, assignedBy *uuid.UUID) error
	Revoke(ctx context.Context, userID uuid.UUID, badgeID int) error
	HasBadge(ctx context.Context, userID uuid.UUID, badgeID int) (bool, error)
}

type badgeRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBadgeRepository(db database.DB) BadgeRepository {
	return &badgeRepository{
		db:  db,
		log: logger.New("badgeRepository"),
	}
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*Badge, error) {
	log := r.log.Function("GetByName")

	var badge Badge
	if err := r.db.SQLWithContext(ctx).First(&badge, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get badge", err, "name", name)
	}

	return &badge, nil
}

func (r *badgeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]UserBadge, error) {
	log := r.log.Function("ListForUser")

	var userBadges []UserBadge
	if err := r.db.SQLWithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("assigned_at asc").
		Find(&userBadges).Error; err != nil {
		return nil, log.Err("failed to list user badges", err, "userID", userID)
	}

	return userBadges, nil
}

// Assign is idempotent: re-assigning an already-held badge is a no-op.
func (r *badgeRepository) Assign(
	ctx context.Context,
	userID uuid.UUID,
	badgeID int,
	assignedBy *uuid.UUID,
) error {
	log := r.log.Function("Assign")

	userBadge := UserBadge{
		UserID:     userID,
		BadgeID:    badgeID,
		AssignedBy: assignedBy,
		AssignedAt: time.Now().UTC(),
	}

	if err := r.db.SQLWithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&userBadge).Error; err != nil {
		return log.Err("failed to assign badge", err, "userID", userID, "badgeID", badgeID)
	}

	return nil
}

func (r *badgeRepository) Revoke(ctx context.Context, userID uuid.UUID, badgeID int) error {
	log := r.log.Function("Revoke")

	if err := r.db.SQLWithContext(ctx).
		Delete(&UserBadge{}, "user_id = ? AND badge_id = ?", userID, badgeID).Error; err != nil {
		return log.Err("failed to revoke badge", err, "userID", userID, "badgeID", badgeID)
	}

	return nil
}

func (r *badgeRepository) HasBadge(ctx context.Context, userID uuid.UUID, badgeID int) (bool, error) {
	var userBadge UserBadge
	err := r.db.SQLWithContext(ctx).
		First(&userBadge, "user_id = ? AND badge_id = ?", userID, badgeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
