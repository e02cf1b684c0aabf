package catalog

import (
	"context"

	"github.com/angelmondragon/storefront-admin/internal/repo"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListServices returns services newest first; activeOnly hides deactivated rows.
func (r *Repository) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	var rows []models.Service
	query := r.DB(ctx).Model(&models.Service{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var row models.Service
	if err := r.DB(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateService(ctx context.Context, row *models.Service) error {
	return r.DB(ctx).Create(row).Error
}

func (r *Repository) UpdateService(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	res := r.DB(ctx).Model(&models.Service{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) DeleteService(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Service{})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var rows []models.Product
	query := r.DB(ctx).Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.DB(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateProduct(ctx context.Context, row *models.Product) error {
	return r.DB(ctx).Create(row).Error
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	res := r.DB(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

// DeleteProduct removes the product and any cart lines pointing at it.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	var removed bool
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		removed = res.RowsAffected > 0
		return res.Error
	})
	return removed, err
}

func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	if err := r.DB(ctx).Model(&models.Service{}).Count(&counts.Services).Error; err != nil {
		return Counts{}, err
	}
	if err := r.DB(ctx).Model(&models.Product{}).Count(&counts.Products).Error; err != nil {
		return Counts{}, err
	}
	return counts, nil
}
