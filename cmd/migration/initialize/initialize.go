package initialize

import (
	"linkfolio/config"
	. "linkfolio/internal/models"

	logger "linkfolio/internal/logger"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeBadges(db, log); err != nil {
		return log.Err("failed to initialize badges", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeBadges(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing badge catalog")

	badges := getBadgeData()

	for _, badge := range badges {
		var existingBadge Badge
		if err := db.First(&existingBadge, "name = ?", badge.Name).Error; err == nil {
			log.Debug("Badge already exists", "name", badge.Name)
			continue
		}
		log.Info("Initializing badge", "name", badge.Name)
		if err := db.Create(&badge).Error; err != nil {
			return log.Err("failed to create badge", err, "name", badge.Name)
		}
	}

	log.Info("Badge catalog initialized", "count", len(badges))
	return nil
}

func getBadgeData() []Badge {
	return []Badge{
		{
			Name:        "founder",
			DisplayName: "Founder",
			Description: "One of the first members of the community",
			Color:       "#f59e0b",
			IsActive:    true,
		},
		{
			Name:        "admin",
			DisplayName: "Administrator",
			Description: "Site administrator",
			Color:       "#ef4444",
			IsActive:    true,
		},
		{
			Name:        "moderator",
			DisplayName: "Moderator",
			Description: "Community moderator",
			Color:       "#8b5cf6",
			IsActive:    true,
		},
		{
			Name:        "developer",
			DisplayName: "Developer",
			Description: "Contributed code to the platform",
			Color:       "#3b82f6",
			IsActive:    true,
		},
		{
			Name:        "designer",
			DisplayName: "Designer",
			Description: "Contributed design work to the platform",
			Color:       "#ec4899",
			IsActive:    true,
		},
		{
			Name:        "early_supporter",
			DisplayName: "Early Supporter",
			Description: "Supported the platform in its early days",
			Color:       "#10b981",
			IsActive:    true,
		},
		{
			Name:        "verified",
			DisplayName: "Verified",
			Description: "Identity verified by the team",
			Color:       "#0ea5e9",
			IsActive:    true,
		},
		{
			Name:        "server_member",
			DisplayName: "Server Member",
			Description: "Verified member of the community Discord server",
			Color:       "#5865f2",
			IsActive:    true,
		},
	}
}
