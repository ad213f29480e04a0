package models

import (
	"time"

	"github.com/google/uuid"
)

// Valid Like / Report target types.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Like records one user's like of a post or comment. The unique index over
// (user_id, target_type, target_id) is what makes likes idempotent.
type Like struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target" json:"user_id"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:idx_likes_user_target" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}
