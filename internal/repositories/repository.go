package repositories

import (
	"linkfolio/internal/database"
)

type Repository struct {
	User       UserRepository
	Profile    ProfileRepository
	SocialLink SocialLinkRepository
	MusicTrack MusicTrackRepository
	Badge      BadgeRepository
	AdminLog   AdminLogRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:       NewUserRepository(db),
		Profile:    NewProfileRepository(db),
		SocialLink: NewSocialLinkRepository(db),
		MusicTrack: NewMusicTrackRepository(db),
		Badge:      NewBadgeRepository(db),
		AdminLog:   NewAdminLogRepository(db),
	}
}
