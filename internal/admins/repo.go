package admins

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-admin/internal/repo"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads and writes the admins table.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListWithUsernames returns every admin association joined with users.username, newest first.
func (r *Repository) ListWithUsernames(ctx context.Context) ([]AdminRecord, error) {
	var rows []models.AdminWithUsername
	err := r.DB(ctx).
		Table("admins").
		Select("admins.user_id, admins.created_at, users.username").
		Joins("JOIN users ON users.id = admins.user_id").
		Order("admins.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]AdminRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromJoined(row))
	}
	return out, nil
}

// Insert creates the admin association; a second insert for the same user violates admins.user_id uniqueness.
func (r *Repository) Insert(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).Create(&models.Admin{UserID: userID}).Error
}

func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var admin models.Admin
	err := r.DB(ctx).Where("user_id = ?", userID).Take(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}
