package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

const (
	// ProductsPerPage is the shop grid page size.
	ProductsPerPage = 20
	// SearchResultLimit caps the autocomplete dropdown.
	SearchResultLimit = 10
	// pagerStateTTL evicts pager state for sessions idle this long.
	pagerStateTTL = 30 * time.Minute
)

// CatalogPage is one page of the shop grid.
type CatalogPage struct {
	Products   []domain.Product `json:"products"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	IsLastPage bool             `json:"is_last_page"`
}

// pagerState tracks a session's walk through the catalog. Cursors are only
// known for pages already crossed, so pages must be visited in order the
// first time.
type pagerState struct {
	filterSig string
	cursors   map[int]*pagination.Cursor
	lastSeen  time.Time
}

// CatalogService serves the product grid with cursor pagination, plus search
// and the merchandising shelves.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger

	mu     sync.Mutex
	pagers map[string]*pagerState
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
		pagers:   make(map[string]*pagerState),
	}
}

func filterSignature(filter domain.FilterState) string {
	sig, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	return string(sig)
}

// pagerFor returns the session's pager state, resetting it when the filter
// changed or the walk restarts at page 1. Stale sessions are pruned on the
// way through.
func (s *CatalogService) pagerFor(sessionID, sig string, page int) *pagerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, st := range s.pagers {
		if now.Sub(st.lastSeen) > pagerStateTTL {
			delete(s.pagers, id)
		}
	}

	state, ok := s.pagers[sessionID]
	if !ok || state.filterSig != sig || page == 1 {
		state = &pagerState{
			filterSig: sig,
			cursors:   make(map[int]*pagination.Cursor),
		}
		s.pagers[sessionID] = state
	}
	state.lastSeen = now
	return state
}

// ListPage returns the requested page of the filtered catalog. Page 1 always
// starts a fresh walk; deeper pages are only reachable once the page before
// them has been fetched under the same filter.
func (s *CatalogService) ListPage(ctx context.Context, sessionID string, filter domain.FilterState, page int) (CatalogPage, error) {
	if sessionID == "" {
		return CatalogPage{}, apperrors.InvalidInput("session id is required")
	}
	if page < 1 {
		return CatalogPage{}, apperrors.InvalidInput("page must be at least 1")
	}

	filter.Normalize()
	sig := filterSignature(filter)
	state := s.pagerFor(sessionID, sig, page)

	var cursor *pagination.Cursor
	if page > 1 {
		s.mu.Lock()
		cursor = state.cursors[page]
		s.mu.Unlock()
		if cursor == nil {
			return CatalogPage{}, apperrors.InvalidInput(fmt.Sprintf("page %d has not been reached yet", page))
		}
	}

	result, err := s.products.ListPage(ctx, filter, cursor, ProductsPerPage)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("list catalog page: %w", err)
	}

	s.mu.Lock()
	if result.NextCursor != nil {
		state.cursors[page+1] = result.NextCursor
	}
	s.mu.Unlock()

	return CatalogPage{
		Products:   result.Products,
		Page:       page,
		PerPage:    ProductsPerPage,
		IsLastPage: result.NextCursor == nil,
	}, nil
}

// GetProduct returns a single active product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Search returns name-prefix matches for the search box. Blank queries match
// nothing.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Product{}, nil
	}

	products, err := s.products.Search(ctx, query, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// OnSale returns the discounted shelf.
func (s *CatalogService) OnSale(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > ProductsPerPage {
		limit = ProductsPerPage
	}

	products, err := s.products.ListOnSale(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list on-sale products: %w", err)
	}
	return products, nil
}

// Featured returns the homepage featured shelf.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > ProductsPerPage {
		limit = ProductsPerPage
	}

	products, err := s.products.ListFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

// Subcategories returns the sidebar filter buckets.
func (s *CatalogService) Subcategories(ctx context.Context) ([]string, error) {
	buckets, err := s.products.ListSubcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return buckets, nil
}
