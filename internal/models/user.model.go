package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	Email        string `gorm:"type:text;uniqueIndex"   json:"email"`
	Username     string `gorm:"type:text;uniqueIndex"   json:"username"`
	DisplayName  string `gorm:"type:text"               json:"displayName"`
	PasswordHash string `gorm:"type:text"               json:"-"`
	IsActive     bool   `gorm:"type:bool;default:true"  json:"isActive"`

	Profile     *Profile     `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	SocialLinks []SocialLink `gorm:"constraint:OnDelete:CASCADE" json:"socialLinks,omitempty"`
	MusicTracks []MusicTrack `gorm:"constraint:OnDelete:CASCADE" json:"musicTracks,omitempty"`
	UserBadges  []UserBadge  `gorm:"constraint:OnDelete:CASCADE" json:"userBadges,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	return nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// UserProfile is the public shape of a user returned by the API
type UserProfile struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	IsActive    bool    `json:"isActive"`
	Role        Role    `json:"role"`
	Bio         string  `json:"bio,omitempty"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
	SpotifyName *string `json:"spotifyUsername,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	profile := UserProfile{
		ID:          u.ID.String(),
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		Role:        RoleUser,
	}

	if u.Profile != nil {
		profile.Role = u.Profile.Role
		profile.Bio = u.Profile.Bio
		profile.AvatarURL = u.Profile.AvatarURL
		if u.Profile.SpotifyConnected {
			profile.SpotifyName = u.Profile.SpotifyUsername
		}
	}

	return profile
}

func (u *User) IsAdmin() bool {
	return u.Profile != nil && u.Profile.Role == RoleAdmin
}
