package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kenworld/edughana-shop/internal/service"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/httputil"
	"github.com/Kenworld/edughana-shop/pkg/validator"
)

// WishlistHandler handles the wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
}

// NewWishlistHandler creates a wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: svc}
}

// AddWishlistRequest is the body for POST /api/v1/wishlist/items.
type AddWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// List handles GET /api/v1/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	products, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Add handles POST /api/v1/wishlist/items.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	var req AddWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Add(r.Context(), sessionID, req.ProductID); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "added"}})
}

// Remove handles DELETE /api/v1/wishlist/items/{productID}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	if err := h.service.Remove(r.Context(), sessionID, chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}

// Status handles GET /api/v1/wishlist/items/{productID}.
func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	saved, err := h.service.Contains(r.Context(), sessionID, chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"saved": saved}})
}

// MoveToCart handles POST /api/v1/wishlist/items/{productID}/move-to-cart.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	cart, err := h.service.MoveToCart(r.Context(), sessionID, chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Clear handles DELETE /api/v1/wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
