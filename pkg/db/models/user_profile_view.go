package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserProfileView maps the read-only admin_user_profiles view.
type UserProfileView struct {
	ID            uuid.UUID       `gorm:"column:id"`
	Username      string          `gorm:"column:username"`
	Email         string          `gorm:"column:email"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	IsBlocked     bool            `gorm:"column:is_blocked"`
	BlockedReason *string         `gorm:"column:blocked_reason"`
	OrderCount    int64           `gorm:"column:order_count"`
	TotalSpent    decimal.Decimal `gorm:"column:total_spent"`
	IsAdmin       bool            `gorm:"column:is_admin"`
}

func (UserProfileView) TableName() string {
	return "admin_user_profiles"
}
