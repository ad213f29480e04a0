package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User covers both email/password and phone/OTP accounts. Email and phone
// are each optional but unique; at least one is always present. OTPCode and
// OTPExpiresAt are only meaningful together.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string         `gorm:"size:50;index" json:"username"`
	Name         string         `gorm:"size:100" json:"name"`
	Email        *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PhoneNumber  *string        `gorm:"size:30;uniqueIndex" json:"phone_number,omitempty"`
	PasswordHash string         `gorm:"not null" json:"-"`
	OTPCode      *string        `gorm:"size:10" json:"-"`
	OTPExpiresAt *time.Time     `json:"-"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	IsAdmin      bool           `gorm:"default:false" json:"-"`
	AuthProvider string         `gorm:"size:20;default:'email'" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
