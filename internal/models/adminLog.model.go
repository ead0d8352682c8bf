package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminLog is an append-only audit record. Rows are never updated or deleted.
type AdminLog struct {
	BaseUUIDModel
	AdminID    uuid.UUID      `gorm:"type:uuid;index" json:"adminId"`
	Action     string         `gorm:"type:text"       json:"action"`
	TargetType string         `gorm:"type:text"       json:"targetType"`
	TargetID   string         `gorm:"type:text"       json:"targetId"`
	Details    datatypes.JSON `gorm:"type:jsonb"      json:"details"`
}
