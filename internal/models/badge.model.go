package models

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	BaseModel
	Name        string `gorm:"type:text;uniqueIndex"  json:"name"`
	DisplayName string `gorm:"type:text"              json:"displayName"`
	Description string `gorm:"type:text"              json:"description"`
	Color       string `gorm:"type:text"              json:"color"`
	Icon        string `gorm:"type:text"              json:"icon"`
	IsActive    bool   `gorm:"type:bool;default:true" json:"isActive"`
}

type UserBadge struct {
	BaseUUIDModel
	UserID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID int       `gorm:"type:int;uniqueIndex:idx_user_badge"        json:"badgeId"`
	// AssignedBy is null for system-assigned badges
	AssignedBy *uuid.UUID `gorm:"type:uuid"      json:"assignedBy,omitempty"`
	AssignedAt time.Time  `gorm:"type:timestamp" json:"assignedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
}

type AssignBadgeRequest struct {
	UserID    uuid.UUID `json:"userId"`
	BadgeName string    `json:"badgeName"`
}

// BadgeDisplay is a badge resolved for presentation
type BadgeDisplay struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}
