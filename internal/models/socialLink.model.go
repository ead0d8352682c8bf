package models

import (
	"github.com/google/uuid"
)

type SocialLink struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	// ProfileID is the legacy owner key from before links were re-parented
	// onto users. Public lookups fall back to it when no rows match UserID.
	ProfileID *uuid.UUID `gorm:"type:uuid;index"        json:"profileId,omitempty"`
	Platform  string     `gorm:"type:text"              json:"platform"`
	Label     string     `gorm:"type:text"              json:"label"`
	URL       string     `gorm:"type:text"              json:"url"`
	Position  int        `gorm:"type:int;default:0"     json:"position"`
	IsActive  bool       `gorm:"type:bool;default:true" json:"isActive"`
}

type CreateSocialLinkRequest struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

type UpdateSocialLinkRequest struct {
	Platform *string `json:"platform,omitempty"`
	Label    *string `json:"label,omitempty"`
	URL      *string `json:"url,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ReorderItem is one {id, sort_order} pair of a reorder submission
type ReorderItem struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sort_order"`
}

type ReorderLinksRequest struct {
	Links []ReorderItem `json:"links"`
}
