package catalog

import (
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	ImageURL      *string         `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Counts is the catalog size shown on the admin dashboard.
type Counts struct {
	Services int64 `json:"services"`
	Products int64 `json:"products"`
}

func serviceFromModel(m models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func productFromModel(m models.Product) ProductDTO {
	return ProductDTO{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Category:      m.Category,
		StockQuantity: m.StockQuantity,
		IsActive:      m.IsActive,
		ImageURL:      m.ImageURL,
		CreatedAt:     m.CreatedAt,
	}
}
