package seed

import (
	"linkfolio/config"
	. "linkfolio/internal/models"

	logger "linkfolio/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	user     User
	role     Role
	bio      string
	links    []SocialLink
	tracks   []MusicTrack
	password string
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []seedUser{
		{
			user: User{
				Email:       "admin@example.com",
				Username:    "admin",
				DisplayName: "Administrator",
				IsActive:    true,
			},
			role:     RoleAdmin,
			bio:      "Keeping the lights on.",
			password: "password123",
		},
		{
			user: User{
				Email:       "ada@example.com",
				Username:    "ada",
				DisplayName: "Ada Lovelace",
				IsActive:    true,
			},
			role: RoleUser,
			bio:  "First programmer. Link collector.",
			links: []SocialLink{
				{Platform: "github", Label: "GitHub", URL: "https://github.com/ada", Position: 1, IsActive: true},
				{Platform: "twitter", Label: "Twitter", URL: "https://twitter.com/ada", Position: 2, IsActive: true},
			},
			tracks: []MusicTrack{
				{Title: "Analytical Engine", Artist: "The Differences", TrackURL: "https://open.spotify.com/track/seed1", SortOrder: 1, IsActive: true},
			},
			password: "password123",
		},
	}

	for _, su := range users {
		var existingUser User
		if err := db.First(&existingUser, "username = ?", su.user.Username).Error; err == nil {
			log.Info("User already exists", "username", su.user.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return log.Err("failed to hash seed password", err, "username", su.user.Username)
		}
		su.user.PasswordHash = string(hash)

		log.Info("Seeding user", "username", su.user.Username)
		if err := db.Create(&su.user).Error; err != nil {
			return log.Err("failed to create user", err, "username", su.user.Username)
		}

		profile := Profile{
			UserID: su.user.ID,
			Bio:    su.bio,
			Role:   su.role,
		}
		if err := db.Create(&profile).Error; err != nil {
			return log.Err("failed to create profile", err, "username", su.user.Username)
		}

		for _, link := range su.links {
			link.UserID = su.user.ID
			if err := db.Create(&link).Error; err != nil {
				return log.Err("failed to create link", err, "username", su.user.Username)
			}
		}

		for _, track := range su.tracks {
			track.UserID = su.user.ID
			if err := db.Create(&track).Error; err != nil {
				return log.Err("failed to create track", err, "username", su.user.Username)
			}
		}
	}

	return nil
}
