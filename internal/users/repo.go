package users

import (
	"context"

	"github.com/angelmondragon/storefront-admin/internal/repo"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail is an exact, case-sensitive lookup.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPage returns users newest-first.
func (r *Repository) ListPage(ctx context.Context, params pagination.Params) (pagination.Page[models.User], error) {
	query, err := repo.Newest(r.DB(ctx).Model(&models.User{}), params)
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	var rows []models.User
	if err := query.Find(&rows).Error; err != nil {
		return pagination.Page[models.User]{}, err
	}
	return pagination.BuildPage(rows, params.Limit, func(u models.User) pagination.Cursor {
		return pagination.Cursor{CreatedAt: u.CreatedAt, ID: u.ID}
	}), nil
}
