package models

import (
	"github.com/google/uuid"
)

type MusicTrack struct {
	BaseUUIDModel
	UserID         uuid.UUID `gorm:"type:uuid;index"        json:"userId"`
	Title          string    `gorm:"type:text"              json:"title"`
	Artist         string    `gorm:"type:text"              json:"artist"`
	TrackURL       string    `gorm:"type:text"              json:"trackUrl"`
	SpotifyTrackID *string   `gorm:"type:text"              json:"spotifyTrackId,omitempty"`
	SortOrder      int       `gorm:"type:int;default:0"     json:"sortOrder"`
	IsActive       bool      `gorm:"type:bool;default:true" json:"isActive"`
}

type CreateMusicTrackRequest struct {
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	TrackURL       string  `json:"trackUrl"`
	SpotifyTrackID *string `json:"spotifyTrackId,omitempty"`
}

type ReorderTracksRequest struct {
	Tracks []ReorderItem `json:"tracks"`
}
