package database

import (
	"linkfolio/internal/logger"
	"linkfolio/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.SocialLink{},
		&models.MusicTrack{},
		&models.Badge{},
		&models.UserBadge{},
		&models.AdminLog{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed")
	return nil
}
