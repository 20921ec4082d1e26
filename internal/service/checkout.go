package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/event"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
)

// CartReader is the slice of the cart service checkout needs.
type CartReader interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// OrderNotifier pings the shop operator about a new order.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, order *domain.Order) error
}

// PlaceOrderInput is the checkout form.
type PlaceOrderInput struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	Region        string `json:"region" validate:"required"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=momo cod card"`
}

// CheckoutService turns carts into orders. Guest checkout is supported; a
// signed-in user's ID is attached when present.
type CheckoutService struct {
	orders   repository.OrderRepository
	cart     CartReader
	notifier OrderNotifier
	producer event.Publisher
	logger   *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(orders repository.OrderRepository, cart CartReader, notifier OrderNotifier, producer event.Publisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		cart:     cart,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// Totals computes the checkout summary for the session's current cart.
func (s *CheckoutService) Totals(ctx context.Context, sessionID string) (domain.OrderTotals, error) {
	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.OrderTotals{}, err
	}
	return domain.ComputeTotals(cart), nil
}

// PlaceOrder creates a pending order from the session's cart, clears the
// cart, and notifies the operator. The webhook ping is best effort; a down
// operator endpoint never blocks an order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, userID *string, input PlaceOrderInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		IsGuest:   userID == nil,
		SessionID: sessionID,
		Customer: domain.CustomerInfo{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Phone:     input.Phone,
			Address:   input.Address,
			City:      input.City,
			Region:    input.Region,
			Notes:     input.Notes,
		},
		Items:         cart.Items,
		Totals:        domain.ComputeTotals(cart),
		PaymentMethod: input.PaymentMethod,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("order_id", order.ID),
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to notify operator of new order",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("session_id", sessionID),
		slog.Bool("is_guest", order.IsGuest),
		slog.String("total", order.Totals.Total.String()),
	)

	return order, nil
}

// GetOrder returns an order by ID for the confirmation page.
func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
