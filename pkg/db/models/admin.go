package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin associates a user with elevated privileges. user_id is unique per table constraint.
type Admin struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// AdminWithUsername is the joined read shape for the admin listing.
type AdminWithUsername struct {
	UserID    uuid.UUID `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Username  string    `gorm:"column:username"`
}
