package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/service"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/httputil"
)

// CatalogHandler handles the product catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// filterFromQuery builds the sidebar filter from repeated query parameters.
// A bound that does not parse is dropped, and the range only applies when
// both bounds survive.
func filterFromQuery(r *http.Request) domain.FilterState {
	q := r.URL.Query()

	filter := domain.FilterState{
		Subcategories: q["subcategory"],
		AgeGroups:     q["age_group"],
		Materials:     q["material"],
		UseCases:      q["use_case"],
	}

	if raw := q.Get("price_min"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMin = &v
		}
	}
	if raw := q.Get("price_max"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMax = &v
		}
	}

	return filter
}

// List handles GET /api/v1/products.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	filter := filterFromQuery(r)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			httputil.WriteError(w, r, apperrors.InvalidInput("page must be a positive integer"))
			return
		}
		page = v
	}

	result, err := h.service.ListPage(r.Context(), sessionID, filter, page)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: httputil.NewCursorPage(result.Products, result.Page, result.PerPage, result.IsLastPage),
	})
}

// Get handles GET /api/v1/products/{productID}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Search handles GET /api/v1/products/search.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

func limitFromQuery(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

// OnSale handles GET /api/v1/products/on-sale.
func (h *CatalogHandler) OnSale(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.OnSale(r.Context(), limitFromQuery(r))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Featured handles GET /api/v1/products/featured.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context(), limitFromQuery(r))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Subcategories handles GET /api/v1/products/categories.
func (h *CatalogHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.Subcategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: buckets})
}
