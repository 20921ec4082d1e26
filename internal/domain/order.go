package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlatShippingFee is the delivery charge in GHS applied to every non-empty
// order regardless of size or destination.
var FlatShippingFee = decimal.NewFromInt(20)

// OrderStatus tracks an order through fulfilment.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CustomerInfo is the delivery and contact form captured at checkout.
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Region    string `json:"region"`
	Notes     string `json:"notes,omitempty"`
}

// OrderTotals breaks down what the customer pays.
type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives checkout totals from a cart. Shipping is the flat
// fee for any non-empty cart and zero otherwise.
func ComputeTotals(cart *Cart) OrderTotals {
	subtotal := cart.Subtotal()

	shipping := decimal.Zero
	if !cart.IsEmpty() {
		shipping = FlatShippingFee
	}

	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// Order is a placed order. Guest checkouts carry IsGuest=true and no UserID.
type Order struct {
	ID            string       `json:"id"`
	UserID        *string      `json:"user_id,omitempty"`
	IsGuest       bool         `json:"is_guest"`
	SessionID     string       `json:"session_id"`
	Customer      CustomerInfo `json:"customer"`
	Items         []CartItem   `json:"items"`
	Totals        OrderTotals  `json:"totals"`
	PaymentMethod string       `json:"payment_method"`
	Status        OrderStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
