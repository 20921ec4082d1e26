package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line in a cart. Price fields are captured at add time so
// the cart renders without refetching the catalog.
type CartItem struct {
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	ListPrice decimal.Decimal  `json:"list_price"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	ImageURL  string           `json:"image_url,omitempty"`
	Quantity  int              `json:"quantity"`
}

// EffectivePrice returns the unit price charged for this line.
func (i *CartItem) EffectivePrice() decimal.Decimal {
	if i.SalePrice != nil && i.SalePrice.LessThan(i.ListPrice) {
		return *i.SalePrice
	}
	return i.ListPrice
}

// LineTotal returns quantity times the effective unit price.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds a session's shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// FindItemIndex returns the index of the line for productID, or -1.
func (c *Cart) FindItemIndex(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Subtotal sums every line total.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
