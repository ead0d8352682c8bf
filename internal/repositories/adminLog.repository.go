package repositories

import (
	"context"
	"encoding/json"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AdminLogRepository interface {
	Append(ctx context.Context, adminID uuid.UUID, action, targetType, targetID string, details map[string]any) error
	ListRecent(ctx context.Context, limit int) ([]AdminLog, error)
}

type adminLogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAdminLogRepository(db database.DB) AdminLogRepository {
	return &adminLogRepository{
		db:  db,
		log: logger.New("adminLogRepository"),
	}
}

// Append writes one audit row. Rows are never updated or deleted afterwards.
func (r *adminLogRepository) Append(
	ctx context.Context,
	adminID uuid.UUID,
	action, targetType, targetID string,
	details map[string]any,
) error {
	log := r.log.Function("Append")

	detailsJSON := datatypes.JSON("{}")
	if details != nil {
		bytes, err := json.Marshal(details)
		if err != nil {
			return log.Err("failed to marshal admin log details", err, "action", action)
		}
		detailsJSON = datatypes.JSON(bytes)
	}

	entry := AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    detailsJSON,
	}

	if err := r.db.SQLWithContext(ctx).Create(&entry).Error; err != nil {
		return log.Err("failed to append admin log", err, "action", action)
	}

	return nil
}

func (r *adminLogRepository) ListRecent(ctx context.Context, limit int) ([]AdminLog, error) {
	log := r.log.Function("ListRecent")

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var entries []AdminLog
	if err := r.db.SQLWithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list admin logs", err)
	}

	return entries, nil
}
