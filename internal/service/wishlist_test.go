package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
)

type stubCartAdder struct {
	cart *domain.Cart
	err  error
	seen []AddItemInput
}

func (s *stubCartAdder) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	s.seen = append(s.seen, input)
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func newWishlistFixture(t *testing.T) (*WishlistService, *MockWishlistRepository, *MockProductRepository, *stubCartAdder) {
	t.Helper()
	wishlists := new(MockWishlistRepository)
	products := new(MockProductRepository)
	adder := &stubCartAdder{cart: domain.NewCart("sess-1")}
	svc := NewWishlistService(wishlists, products, adder, testLogger())
	return svc, wishlists, products, adder
}

func TestWishlistService_Add_Idempotent(t *testing.T) {
	svc, wishlists, products, _ := newWishlistFixture(t)
	ctx := context.Background()

	saved := domain.NewWishlist("sess-1")
	saved.Add("prod-1")

	products.On("GetByID", mock.Anything, "prod-1").Return(abacus(), nil)
	wishlists.On("Get", mock.Anything, "sess-1").Return(saved, nil)

	// Already present, so nothing is written.
	require.NoError(t, svc.Add(ctx, "sess-1", "prod-1"))
	wishlists.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistService_Add_UnknownProduct(t *testing.T) {
	svc, _, products, _ := newWishlistFixture(t)

	products.On("GetByID", mock.Anything, "prod-missing").Return(nil, apperrors.NotFound("product", "prod-missing"))

	err := svc.Add(context.Background(), "sess-1", "prod-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistService_List_DropsRetiredProducts(t *testing.T) {
	svc, wishlists, products, _ := newWishlistFixture(t)

	saved := domain.NewWishlist("sess-1")
	saved.Add("prod-1")
	saved.Add("prod-retired")
	saved.Add("prod-2")

	wishlists.On("Get", mock.Anything, "sess-1").Return(saved, nil)
	products.On("GetByIDs", mock.Anything, []string{"prod-1", "prod-retired", "prod-2"}).
		Return([]domain.Product{
			{ID: "prod-2", Name: "Flashcards", ListPrice: dec("20")},
			{ID: "prod-1", Name: "Wooden Abacus", ListPrice: dec("45")},
		}, nil)

	got, err := svc.List(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Saved order is preserved even though the repo returned another order.
	assert.Equal(t, "prod-1", got[0].ID)
	assert.Equal(t, "prod-2", got[1].ID)
}

func TestWishlistService_List_EmptyWishlist(t *testing.T) {
	svc, wishlists, products, _ := newWishlistFixture(t)

	wishlists.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("wishlist", "sess-1"))

	got, err := svc.List(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	products.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestWishlistService_Remove_AbsentIsNoop(t *testing.T) {
	svc, wishlists, _, _ := newWishlistFixture(t)

	saved := domain.NewWishlist("sess-1")
	saved.Add("prod-1")
	wishlists.On("Get", mock.Anything, "sess-1").Return(saved, nil)

	require.NoError(t, svc.Remove(context.Background(), "sess-1", "prod-other"))
	wishlists.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistService_MoveToCart(t *testing.T) {
	svc, wishlists, _, adder := newWishlistFixture(t)

	saved := domain.NewWishlist("sess-1")
	saved.Add("prod-1")

	wishlists.On("Get", mock.Anything, "sess-1").Return(saved, nil)
	wishlists.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.MoveToCart(context.Background(), "sess-1", "prod-1")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	require.Len(t, adder.seen, 1)
	assert.Equal(t, AddItemInput{ProductID: "prod-1", Quantity: 1}, adder.seen[0])
	assert.False(t, saved.Contains("prod-1"))
}

func TestWishlistService_MoveToCart_CartErrorLeavesWishlist(t *testing.T) {
	svc, wishlists, _, adder := newWishlistFixture(t)
	adder.err = apperrors.NotFound("product", "prod-1")

	_, err := svc.MoveToCart(context.Background(), "sess-1", "prod-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	wishlists.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistService_Contains(t *testing.T) {
	svc, wishlists, _, _ := newWishlistFixture(t)

	saved := domain.NewWishlist("sess-1")
	saved.Add("prod-1")
	wishlists.On("Get", mock.Anything, "sess-1").Return(saved, nil)

	got, err := svc.Contains(context.Background(), "sess-1", "prod-1")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.Contains(context.Background(), "sess-1", "prod-2")
	require.NoError(t, err)
	assert.False(t, got)
}
