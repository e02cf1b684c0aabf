// Package profiles reads the admin user view: each user with order totals and admin status.
package profiles

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-admin/internal/repo"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Profile struct {
	ID            uuid.UUID       `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	CreatedAt     time.Time       `json:"created_at"`
	IsBlocked     bool            `json:"is_blocked"`
	BlockedReason *string         `json:"blocked_reason,omitempty"`
	OrderCount    int64           `json:"order_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	IsAdmin       bool            `json:"is_admin"`
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns one page of profiles, newest account first.
func (r *Repository) List(ctx context.Context, params pagination.Params) (pagination.Page[Profile], error) {
	query, err := repo.Newest(r.DB(ctx).Model(&models.UserProfileView{}), params)
	if err != nil {
		return pagination.Page[Profile]{}, err
	}
	var rows []models.UserProfileView
	if err := query.Find(&rows).Error; err != nil {
		return pagination.Page[Profile]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user profiles")
	}

	page := pagination.BuildPage(rows, params.Limit, func(v models.UserProfileView) pagination.Cursor {
		return pagination.Cursor{CreatedAt: v.CreatedAt, ID: v.ID}
	})
	out := pagination.Page[Profile]{Items: make([]Profile, 0, len(page.Items)), NextCursor: page.NextCursor}
	for _, row := range page.Items {
		out.Items = append(out.Items, fromView(row))
	}
	return out, nil
}

func fromView(v models.UserProfileView) Profile {
	return Profile{
		ID:            v.ID,
		Username:      v.Username,
		Email:         v.Email,
		CreatedAt:     v.CreatedAt,
		IsBlocked:     v.IsBlocked,
		BlockedReason: v.BlockedReason,
		OrderCount:    v.OrderCount,
		TotalSpent:    v.TotalSpent,
		IsAdmin:       v.IsAdmin,
	}
}
