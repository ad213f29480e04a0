package models

import (
	"time"

	"github.com/google/uuid"
)

// Report flags a post or comment for review. ReporterID is nullable so
// reports survive account deletion.
type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterID *uuid.UUID `gorm:"type:uuid;index" json:"reporter_id,omitempty"`
	TargetType string     `gorm:"size:20;not null" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"target_id"`
	Reason     string     `gorm:"size:500" json:"reason"`
	Resolved   bool       `gorm:"default:false" json:"resolved"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Reporter   *User      `gorm:"foreignKey:ReporterID" json:"-"`
}
