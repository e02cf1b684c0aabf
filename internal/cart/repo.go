package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront-admin/internal/repo"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists cart lines, one row per (user, product).
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListItems returns the user's cart lines with their products, oldest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// FindItem returns the line for (userID, productID) or nil when absent.
func (r *Repository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddQuantity inserts the line or increments the existing one.
func (r *Repository) AddQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(item).Error
}

// SetQuantity overwrites the quantity of an existing line and reports whether it existed.
func (r *Repository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (bool, error) {
	res := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{"quantity": qty, "updated_at": time.Now().UTC()})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	res := r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

// SumQuantity is the total number of units across the user's cart.
func (r *Repository) SumQuantity(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.DB(ctx).
		Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}
