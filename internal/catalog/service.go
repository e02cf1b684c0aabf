package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository interface {
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	FindService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, row *models.Service) error
	UpdateService(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	DeleteService(ctx context.Context, id uuid.UUID) (bool, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, row *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
	Counts(ctx context.Context) (Counts, error)
}

// Service manages the services and products sold by the storefront.
type Service interface {
	ListServices(ctx context.Context, activeOnly bool) ([]ServiceDTO, error)
	CreateService(ctx context.Context, form FormData) (*ServiceDTO, error)
	UpdateService(ctx context.Context, id uuid.UUID, form FormData) (*ServiceDTO, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, activeOnly bool) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, form FormData) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, form FormData) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (Counts, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListServices(ctx context.Context, activeOnly bool) ([]ServiceDTO, error) {
	rows, err := s.repo.ListServices(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	out := make([]ServiceDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, serviceFromModel(row))
	}
	return out, nil
}

func (s *service) CreateService(ctx context.Context, form FormData) (*ServiceDTO, error) {
	input, err := ParseServiceForm(form)
	if err != nil {
		return nil, err
	}
	row := &models.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := s.repo.CreateService(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}
	dto := serviceFromModel(*row)
	return &dto, nil
}

func (s *service) UpdateService(ctx context.Context, id uuid.UUID, form FormData) (*ServiceDTO, error) {
	input, err := ParseServiceForm(form)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"category":    input.Category,
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	found, err := s.repo.UpdateService(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	row, err := s.repo.FindService(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "service")
	}
	dto := serviceFromModel(*row)
	return &dto, nil
}

func (s *service) DeleteService(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.DeleteService(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

func (s *service) CreateProduct(ctx context.Context, form FormData) (*ProductDTO, error) {
	input, err := ParseProductForm(form)
	if err != nil {
		return nil, err
	}
	row := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
		IsActive:      input.IsActive == nil || *input.IsActive,
	}
	if err := s.repo.CreateProduct(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := productFromModel(*row)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, form FormData) (*ProductDTO, error) {
	input, err := ParseProductForm(form)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":           input.Name,
		"description":    input.Description,
		"price":          input.Price,
		"category":       input.Category,
		"stock_quantity": input.StockQuantity,
		"image_url":      input.ImageURL,
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	found, err := s.repo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	row, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "product")
	}
	dto := productFromModel(*row)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) Counts(ctx context.Context) (Counts, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return Counts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count catalog")
	}
	return counts, nil
}

func mapLookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
