package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

type Profile struct {
	BaseUUIDModel
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex"       json:"userId"`
	Bio       string    `gorm:"type:text"                   json:"bio"`
	AvatarURL string    `gorm:"type:text"                   json:"avatarUrl"`
	Role      Role      `gorm:"type:text;default:user"      json:"role"`

	// Spotify connection. The four nullable fields and the Connected flag are
	// always written together: either all populated or all cleared.
	SpotifyConnected      bool       `gorm:"type:bool;default:false" json:"spotifyConnected"`
	SpotifyUsername       *string    `gorm:"type:text"               json:"spotifyUsername,omitempty"`
	SpotifyAccessToken    *string    `gorm:"type:text"               json:"-"`
	SpotifyRefreshToken   *string    `gorm:"type:text"               json:"-"`
	SpotifyTokenExpiresAt *time.Time `gorm:"type:timestamp"          json:"-"`

	DiscordConnected bool    `gorm:"type:bool;default:false" json:"discordConnected"`
	DiscordUserID    *string `gorm:"type:text"               json:"-"`
	DiscordUsername  *string `gorm:"type:text"               json:"discordUsername,omitempty"`
}

// SpotifyConnection carries the field set written on connect and refresh
type SpotifyConnection struct {
	Username     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ConnectDiscordRequest carries the authorization code the provider callback
// handed back to the client.
type ConnectDiscordRequest struct {
	Code string `json:"code"`
}
