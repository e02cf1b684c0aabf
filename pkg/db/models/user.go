package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-admin/pkg/enums"
)

// User represents the canonical identity record owned by the auth subsystem.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username      string         `gorm:"column:username;not null"`
	Email         string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Role          enums.UserRole `gorm:"column:role;type:text;not null;default:'user'"`
	IsBlocked     bool           `gorm:"column:is_blocked;not null;default:false"`
	BlockedReason *string        `gorm:"column:blocked_reason"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
