package badgesController

import (
	"context"

	"linkfolio/internal/logger"
	"linkfolio/internal/models"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"

	"github.com/google/uuid"
)

// BadgesController resolves badges for presentation and handles
// admin-initiated assignment with audit logging.
type BadgesController struct {
	badgeRepo    repositories.BadgeRepository
	adminLogRepo repositories.AdminLogRepository
	log          logger.Logger
}

type BadgesControllerInterface interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.BadgeDisplay, error)
	Assign(ctx context.Context, admin *models.User, req models.AssignBadgeRequest) error
	Revoke(ctx context.Context, admin *models.User, req models.AssignBadgeRequest) error
	ListLogs(ctx context.Context, limit int) ([]models.AdminLog, error)
}

func New(
	badgeRepo repositories.BadgeRepository,
	adminLogRepo repositories.AdminLogRepository,
) BadgesControllerInterface {
	return &BadgesController{
		badgeRepo:    badgeRepo,
		adminLogRepo: adminLogRepo,
		log:          logger.New("badgesController"),
	}
}

// ListForUser returns the user's badges resolved for display. A badge with
// no stored icon falls back to the name-based icon lookup.
func (c *BadgesController) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.BadgeDisplay, error) {
	userBadges, err := c.badgeRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	displays := make([]models.BadgeDisplay, 0, len(userBadges))
	for _, ub := range userBadges {
		if !ub.Badge.IsActive {
			continue
		}

		icon := ub.Badge.Icon
		if icon == "" {
			icon = services.GetBadgeIcon(ub.Badge.Name)
		}

		displays = append(displays, models.BadgeDisplay{
			Name:        ub.Badge.Name,
			DisplayName: ub.Badge.DisplayName,
			Description: ub.Badge.Description,
			Color:       ub.Badge.Color,
			Icon:        icon,
		})
	}

	return displays, nil
}

func (c *BadgesController) Assign(
	ctx context.Context,
	admin *models.User,
	req models.AssignBadgeRequest,
) error {
	log := c.log.Function("Assign")

	badge, err := c.badgeRepo.GetByName(ctx, req.BadgeName)
	if err != nil {
		return err
	}

	adminID := admin.ID
	if err := c.badgeRepo.Assign(ctx, req.UserID, badge.ID, &adminID); err != nil {
		return err
	}

	if err := c.adminLogRepo.Append(ctx, admin.ID, "badge_assigned", "user", req.UserID.String(),
		map[string]any{"badge": badge.Name}); err != nil {
		log.Warn("failed to append admin log", "error", err)
	}

	log.Info("badge assigned", "badge", badge.Name, "userID", req.UserID, "adminID", admin.ID)
	return nil
}

func (c *BadgesController) Revoke(
	ctx context.Context,
	admin *models.User,
	req models.AssignBadgeRequest,
) error {
	log := c.log.Function("Revoke")

	badge, err := c.badgeRepo.GetByName(ctx, req.BadgeName)
	if err != nil {
		return err
	}

	if err := c.badgeRepo.Revoke(ctx, req.UserID, badge.ID); err != nil {
		return err
	}

	if err := c.adminLogRepo.Append(ctx, admin.ID, "badge_revoked", "user", req.UserID.String(),
		map[string]any{"badge": badge.Name}); err != nil {
		log.Warn("failed to append admin log", "error", err)
	}

	log.Info("badge revoked", "badge", badge.Name, "userID", req.UserID, "adminID", admin.ID)
	return nil
}

func (c *BadgesController) ListLogs(ctx context.Context, limit int) ([]models.AdminLog, error) {
	return c.adminLogRepo.ListRecent(ctx, limit)
}
