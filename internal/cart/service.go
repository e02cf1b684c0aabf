package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type itemRepository interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	AddQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (bool, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	SumQuantity(ctx context.Context, userID uuid.UUID) (int, error)
}

type productLoader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart operations for the signed-in shopper.
type Service interface {
	Items(ctx context.Context, userID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Counter(ctx context.Context, userID uuid.UUID) *Totals
}

// CartLine is one line of the cart with its priced subtotal.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

type CartView struct {
	Lines      []CartLine      `json:"lines"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
}

type service struct {
	repo     itemRepository
	products productLoader
}

func NewService(repo itemRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Items(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	view := &CartView{Lines: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		line := CartLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: decimal.Zero, Subtotal: decimal.Zero}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.UnitPrice = item.Product.Price
			line.ImageURL = item.Product.ImageURL
			line.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		}
		view.Lines = append(view.Lines, line)
		view.TotalItems += item.Quantity
		view.Total = view.Total.Add(line.Subtotal)
	}
	return view, nil
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.loadActiveProduct(ctx, productID)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindItem(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	total := qty
	if existing != nil {
		total += existing.Quantity
	}
	if err := checkStock(product, total); err != nil {
		return err
	}
	if err := s.repo.AddQuantity(ctx, userID, productID, qty); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.loadActiveProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := checkStock(product, qty); err != nil {
		return err
	}
	found, err := s.repo.SetQuantity(ctx, userID, productID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	found, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// Counter returns a per-request memoized total; the sum query runs at most once.
func (s *service) Counter(ctx context.Context, userID uuid.UUID) *Totals {
	return newTotals(func() (int, error) {
		return s.repo.SumQuantity(ctx, userID)
	})
}

func (s *service) loadActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not available")
	}
	return product, nil
}

// checkStock compares against current inventory; nothing is reserved.
func checkStock(product *models.Product, qty int) error {
	if qty > product.StockQuantity {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
			WithDetails(map[string]int{"available": product.StockQuantity, "requested": qty})
	}
	return nil
}
