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

// CheckoutHandler handles the checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: svc}
}

// Totals handles GET /api/v1/checkout/totals.
func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	totals, err := h.service.Totals(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: totals})
}

// PlaceOrder handles POST /api/v1/checkout. Anonymous sessions place guest
// orders; a valid bearer token attaches the order to the account.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	var input service.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var userID *string
	if uid, ok := userIDFromContext(r.Context()); ok {
		userID = &uid
	}

	order, err := h.service.PlaceOrder(r.Context(), sessionID, userID, input)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
