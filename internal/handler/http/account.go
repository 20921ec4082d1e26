package http

import (
	"encoding/json"
	"net/http"

	"github.com/Kenworld/edughana-shop/internal/service"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/httputil"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
	"github.com/Kenworld/edughana-shop/pkg/validator"
)

// AccountHandler handles the signed-in customer dashboard endpoints.
type AccountHandler struct {
	service *service.AccountService
}

// NewAccountHandler creates an account HTTP handler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// GetProfile handles GET /api/v1/account/profile.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// UpdateProfile handles PUT /api/v1/account/profile.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// Orders handles GET /api/v1/account/orders.
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	result, err := h.service.Orders(r.Context(), userID, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
