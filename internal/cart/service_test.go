package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubItemRepo struct {
	items     map[uuid.UUID]int
	product   *models.Product
	sumCalls  int
	sumErr    error
	addCalled bool
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: map[uuid.UUID]int{}}
}

func (s *stubItemRepo) ListItems(context.Context, uuid.UUID) ([]models.CartItem, error) {
	out := make([]models.CartItem, 0, len(s.items))
	for pid, qty := range s.items {
		out = append(out, models.CartItem{ProductID: pid, Quantity: qty, Product: s.product})
	}
	return out, nil
}

func (s *stubItemRepo) FindItem(_ context.Context, _ uuid.UUID, productID uuid.UUID) (*models.CartItem, error) {
	qty, ok := s.items[productID]
	if !ok {
		return nil, nil
	}
	return &models.CartItem{ProductID: productID, Quantity: qty}, nil
}

func (s *stubItemRepo) AddQuantity(_ context.Context, _ uuid.UUID, productID uuid.UUID, qty int) error {
	s.addCalled = true
	s.items[productID] += qty
	return nil
}

func (s *stubItemRepo) SetQuantity(_ context.Context, _ uuid.UUID, productID uuid.UUID, qty int) (bool, error) {
	if _, ok := s.items[productID]; !ok {
		return false, nil
	}
	s.items[productID] = qty
	return true, nil
}

func (s *stubItemRepo) Remove(_ context.Context, _ uuid.UUID, productID uuid.UUID) (bool, error) {
	if _, ok := s.items[productID]; !ok {
		return false, nil
	}
	delete(s.items, productID)
	return true, nil
}

func (s *stubItemRepo) SumQuantity(context.Context, uuid.UUID) (int, error) {
	s.sumCalls++
	if s.sumErr != nil {
		return 0, s.sumErr
	}
	total := 0
	for _, qty := range s.items {
		total += qty
	}
	return total, nil
}

type stubProducts struct {
	product *models.Product
	err     error
}

func (s stubProducts) FindProduct(context.Context, uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func testProduct(stock int, active bool) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Leash",
		Price:         decimal.RequireFromString("12.50"),
		StockQuantity: stock,
		IsActive:      active,
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, stubProducts{})
	require.Error(t, err)
	_, err = NewService(newStubItemRepo(), nil)
	require.Error(t, err)
}

func TestAddItemAccumulatesWithinStock(t *testing.T) {
	product := testProduct(5, true)
	repo := newStubItemRepo()
	svc, err := NewService(repo, stubProducts{product: product})
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, svc.AddItem(ctx, userID, product.ID, 3))
	require.NoError(t, svc.AddItem(ctx, userID, product.ID, 2))
	assert.Equal(t, 5, repo.items[product.ID])

	err = svc.AddItem(ctx, userID, product.ID, 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, 5, repo.items[product.ID])
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name     string
		products stubProducts
		qty      int
		code     pkgerrors.Code
	}{
		{name: "zero quantity", products: stubProducts{product: testProduct(5, true)}, qty: 0, code: pkgerrors.CodeValidation},
		{name: "missing product", products: stubProducts{err: gorm.ErrRecordNotFound}, qty: 1, code: pkgerrors.CodeNotFound},
		{name: "inactive product", products: stubProducts{product: testProduct(5, false)}, qty: 1, code: pkgerrors.CodeStateConflict},
		{name: "over stock", products: stubProducts{product: testProduct(2, true)}, qty: 3, code: pkgerrors.CodeStateConflict},
		{name: "lookup failure", products: stubProducts{err: errors.New("db down")}, qty: 1, code: pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubItemRepo()
			svc, err := NewService(repo, tc.products)
			require.NoError(t, err)

			err = svc.AddItem(ctx, userID, uuid.New(), tc.qty)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.CodeOf(err))
			assert.False(t, repo.addCalled)
		})
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	product := testProduct(10, true)
	repo := newStubItemRepo()
	svc, err := NewService(repo, stubProducts{product: product})
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	err = svc.UpdateQuantity(ctx, userID, product.ID, 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	require.NoError(t, svc.AddItem(ctx, userID, product.ID, 1))
	require.NoError(t, svc.UpdateQuantity(ctx, userID, product.ID, 7))
	assert.Equal(t, 7, repo.items[product.ID])

	err = svc.UpdateQuantity(ctx, userID, product.ID, 11)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, svc.RemoveItem(ctx, userID, product.ID))
	err = svc.RemoveItem(ctx, userID, product.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestItemsPricesLines(t *testing.T) {
	product := testProduct(10, true)
	repo := newStubItemRepo()
	repo.product = product
	repo.items[product.ID] = 3
	svc, err := NewService(repo, stubProducts{product: product})
	require.NoError(t, err)

	view, err := svc.Items(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, "37.5", view.Lines[0].Subtotal.String())
	assert.True(t, view.Total.Equal(decimal.RequireFromString("37.50")))
}

func TestCounterMemoizesSum(t *testing.T) {
	repo := newStubItemRepo()
	repo.items[uuid.New()] = 2
	repo.items[uuid.New()] = 4
	svc, err := NewService(repo, stubProducts{})
	require.NoError(t, err)

	counter := svc.Counter(context.Background(), uuid.New())
	assert.Equal(t, 0, repo.sumCalls)
	assert.Equal(t, 6, counter.TotalItems())
	assert.Equal(t, 6, counter.TotalItems())
	assert.NoError(t, counter.Err())
	assert.Equal(t, 1, repo.sumCalls)
}

func TestCounterFailureReadsAsZero(t *testing.T) {
	repo := newStubItemRepo()
	repo.sumErr = errors.New("boom")
	svc, err := NewService(repo, stubProducts{})
	require.NoError(t, err)

	counter := svc.Counter(context.Background(), uuid.New())
	assert.Equal(t, 0, counter.TotalItems())
	assert.EqualError(t, counter.Err(), "boom")
}

func TestStaticCounter(t *testing.T) {
	var c Counter = StaticCounter(0)
	assert.Equal(t, 0, c.TotalItems())
}
