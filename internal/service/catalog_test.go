package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *MockProductRepository) {
	t.Helper()
	products := new(MockProductRepository)
	return NewCatalogService(products, testLogger()), products
}

func makeProducts(n int, prefix string) []domain.Product {
	now := time.Now().UTC()
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{
			ID:        fmt.Sprintf("%s-%d", prefix, i),
			Name:      "Product",
			ListPrice: dec("10"),
			Active:    true,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

// Walks a 41-product catalog: two full pages then a final single-product
// page flagged as last.
func TestCatalogService_ListPage_WalkToLastPage(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()

	page1 := makeProducts(ProductsPerPage, "a")
	page2 := makeProducts(ProductsPerPage, "b")
	page3 := makeProducts(1, "c")

	cursor1 := &pagination.Cursor{ID: "a-19", CreatedAt: page1[19].CreatedAt}
	cursor2 := &pagination.Cursor{ID: "b-19", CreatedAt: page2[19].CreatedAt}

	products.On("ListPage", mock.Anything, domain.FilterState{}, (*pagination.Cursor)(nil), ProductsPerPage).
		Return(repository.ProductPage{Products: page1, NextCursor: cursor1}, nil).Once()
	products.On("ListPage", mock.Anything, domain.FilterState{}, cursor1, ProductsPerPage).
		Return(repository.ProductPage{Products: page2, NextCursor: cursor2}, nil).Once()
	products.On("ListPage", mock.Anything, domain.FilterState{}, cursor2, ProductsPerPage).
		Return(repository.ProductPage{Products: page3}, nil).Once()

	got1, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.NoError(t, err)
	assert.Len(t, got1.Products, ProductsPerPage)
	assert.False(t, got1.IsLastPage)

	got2, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 2)
	require.NoError(t, err)
	assert.Len(t, got2.Products, ProductsPerPage)
	assert.False(t, got2.IsLastPage)

	got3, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 3)
	require.NoError(t, err)
	assert.Len(t, got3.Products, 1)
	assert.True(t, got3.IsLastPage)

	products.AssertExpectations(t)
}

func TestCatalogService_ListPage_JumpToUnvisitedPage(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.ListPage(context.Background(), "sess-1", domain.FilterState{}, 3)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_ListPage_PageOneResetsWalk(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()

	page1 := makeProducts(ProductsPerPage, "a")
	cursor1 := &pagination.Cursor{ID: "a-19", CreatedAt: page1[19].CreatedAt}

	// Page 1 is fetched twice; both times from the top.
	products.On("ListPage", mock.Anything, domain.FilterState{}, (*pagination.Cursor)(nil), ProductsPerPage).
		Return(repository.ProductPage{Products: page1, NextCursor: cursor1}, nil).Twice()

	_, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.NoError(t, err)
	_, err = svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.NoError(t, err)

	products.AssertExpectations(t)
}

func TestCatalogService_ListPage_FilterChangeResetsWalk(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()

	page1 := makeProducts(ProductsPerPage, "a")
	cursor1 := &pagination.Cursor{ID: "a-19", CreatedAt: page1[19].CreatedAt}

	products.On("ListPage", mock.Anything, domain.FilterState{}, (*pagination.Cursor)(nil), ProductsPerPage).
		Return(repository.ProductPage{Products: page1, NextCursor: cursor1}, nil).Once()

	_, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.NoError(t, err)

	// Page 2 under a different filter is unreachable: the walk restarted.
	filtered := domain.FilterState{AgeGroups: []string{"3-5"}}
	_, err = svc.ListPage(ctx, "sess-1", filtered, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_ListPage_RepoErrorDoesNotAdvance(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()

	products.On("ListPage", mock.Anything, domain.FilterState{}, (*pagination.Cursor)(nil), ProductsPerPage).
		Return(repository.ProductPage{}, errors.New("connection refused")).Once()

	_, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.Error(t, err)

	// The failed fetch recorded no cursor, so page 2 stays unreachable.
	_, err = svc.ListPage(ctx, "sess-1", domain.FilterState{}, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_ListPage_SessionsIsolated(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()

	page1 := makeProducts(ProductsPerPage, "a")
	cursor1 := &pagination.Cursor{ID: "a-19", CreatedAt: page1[19].CreatedAt}

	products.On("ListPage", mock.Anything, domain.FilterState{}, (*pagination.Cursor)(nil), ProductsPerPage).
		Return(repository.ProductPage{Products: page1, NextCursor: cursor1}, nil).Once()

	_, err := svc.ListPage(ctx, "sess-1", domain.FilterState{}, 1)
	require.NoError(t, err)

	// Another session has not walked page 1, so page 2 is invalid for it.
	_, err = svc.ListPage(ctx, "sess-2", domain.FilterState{}, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_Search_BlankQuery(t *testing.T) {
	svc, products := newCatalogFixture(t)

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_Search_Delegates(t *testing.T) {
	svc, products := newCatalogFixture(t)

	results := makeProducts(2, "a")
	products.On("Search", mock.Anything, "aba", SearchResultLimit).Return(results, nil)

	got, err := svc.Search(context.Background(), "aba")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	products.AssertExpectations(t)
}

func TestCatalogService_OnSale_CapsLimit(t *testing.T) {
	svc, products := newCatalogFixture(t)

	products.On("ListOnSale", mock.Anything, ProductsPerPage).Return([]domain.Product{}, nil)

	_, err := svc.OnSale(context.Background(), 500)
	require.NoError(t, err)
	products.AssertExpectations(t)
}
