package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func abacus() *domain.Product {
	return &domain.Product{
		ID:        "prod-1",
		Name:      "Wooden Abacus",
		Category:  "Maths",
		ListPrice: dec("45"),
		Active:    true,
	}
}

func newCartFixture(t *testing.T) (*CartService, *MockCartRepository, *MockProductRepository, *MockPublisher) {
	t.Helper()
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	producer := new(MockPublisher)
	svc := NewCartService(carts, products, producer, testLogger())
	return svc, carts, products, producer
}

func TestCartService_GetCart_MissingIsEmpty(t *testing.T) {
	svc, carts, _, _ := newCartFixture(t)

	carts.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	cart, err := svc.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "sess-1", cart.SessionID)
	carts.AssertExpectations(t)
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	svc, carts, products, producer := newCartFixture(t)

	products.On("GetByID", mock.Anything, "prod-1").Return(abacus(), nil)
	carts.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	carts.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	producer.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Wooden Abacus", cart.Items[0].Name)
	carts.AssertExpectations(t)
}

func TestCartService_AddItem_MergesAdditively(t *testing.T) {
	svc, carts, products, producer := newCartFixture(t)

	existing := domain.NewCart("sess-1")
	existing.Items = []domain.CartItem{{ProductID: "prod-1", Name: "Wooden Abacus", ListPrice: dec("45"), Quantity: 2}}

	products.On("GetByID", mock.Anything, "prod-1").Return(abacus(), nil)
	carts.On("Get", mock.Anything, "sess-1").Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc, _, products, _ := newCartFixture(t)

	products.On("GetByID", mock.Anything, "prod-missing").Return(nil, apperrors.NotFound("product", "prod-missing"))

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-missing", Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_AddItem_DefaultsZeroQuantityToOne(t *testing.T) {
	svc, carts, products, producer := newCartFixture(t)

	products.On("GetByID", mock.Anything, "prod-1").Return(abacus(), nil)
	carts.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_ClampsToOne(t *testing.T) {
	svc, carts, _, producer := newCartFixture(t)

	existing := domain.NewCart("sess-1")
	existing.Items = []domain.CartItem{{ProductID: "prod-1", Name: "Wooden Abacus", ListPrice: dec("45"), Quantity: 5}}

	carts.On("Get", mock.Anything, "sess-1").Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.UpdateQuantity(context.Background(), "sess-1", "prod-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.UpdateQuantity(context.Background(), "sess-1", "prod-1", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_AbsentLineIsNoop(t *testing.T) {
	svc, carts, _, _ := newCartFixture(t)

	existing := domain.NewCart("sess-1")
	existing.Items = []domain.CartItem{{ProductID: "prod-1", ListPrice: dec("45"), Quantity: 2}}

	carts.On("Get", mock.Anything, "sess-1").Return(existing, nil)

	cart, err := svc.UpdateQuantity(context.Background(), "sess-1", "prod-other", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_RemoveItem_AbsentLineIsNoop(t *testing.T) {
	svc, carts, _, _ := newCartFixture(t)

	existing := domain.NewCart("sess-1")
	existing.Items = []domain.CartItem{{ProductID: "prod-1", ListPrice: dec("45"), Quantity: 2}}

	carts.On("Get", mock.Anything, "sess-1").Return(existing, nil)

	cart, err := svc.RemoveItem(context.Background(), "sess-1", "prod-other")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Walks a full cart session: add 2, add 1 more, force the quantity to the
// floor, then remove the line.
func TestCartService_FullScenario(t *testing.T) {
	svc, carts, products, producer := newCartFixture(t)

	state := domain.NewCart("sess-1")

	products.On("GetByID", mock.Anything, "prod-1").Return(abacus(), nil)
	carts.On("Get", mock.Anything, "sess-1").Return(state, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())

	cart, err = svc.AddItem(context.Background(), "sess-1", AddItemInput{ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount())

	cart, err = svc.UpdateQuantity(context.Background(), "sess-1", "prod-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())

	cart, err = svc.RemoveItem(context.Background(), "sess-1", "prod-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestCartService_ClearCart(t *testing.T) {
	svc, carts, _, producer := newCartFixture(t)

	carts.On("Delete", mock.Anything, "sess-1").Return(nil)
	producer.On("PublishCartCleared", mock.Anything, "sess-1").Return(nil)

	err := svc.ClearCart(context.Background(), "sess-1")
	assert.NoError(t, err)
	carts.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestCartService_Summary(t *testing.T) {
	svc, carts, _, _ := newCartFixture(t)

	existing := domain.NewCart("sess-1")
	existing.Items = []domain.CartItem{
		{ProductID: "prod-1", ListPrice: dec("45"), Quantity: 2},
		{ProductID: "prod-2", ListPrice: dec("20"), SalePrice: decPtr("15"), Quantity: 1},
	}
	carts.On("Get", mock.Anything, "sess-1").Return(existing, nil)

	summary, err := svc.Summary(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, "105", summary.Subtotal)
}
