package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kenworld/edughana-shop/internal/domain"
	pkgkafka "github.com/Kenworld/edughana-shop/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated = "edugh.cart.updated"
	TopicCartCleared = "edugh.cart.cleared"
	TopicOrderPlaced = "edugh.order.placed"
)

// Source identifier for events originating from this service.
const SourceShop = "edughana-shop"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string     `json:"session_id"`
	ItemCount int        `json:"item_count"`
	Subtotal  string     `json:"subtotal"`
	Items     []ItemData `json:"items"`
}

// ItemData is an order or cart line within event payloads.
type ItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID       string     `json:"order_id"`
	SessionID     string     `json:"session_id"`
	IsGuest       bool       `json:"is_guest"`
	CustomerEmail string     `json:"customer_email"`
	Subtotal      string     `json:"subtotal"`
	Shipping      string     `json:"shipping"`
	Total         string     `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Items         []ItemData `json:"items"`
}

// Publisher is the producer interface services depend on, so tests can swap
// in a mock.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, sessionID string) error
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func itemData(items []domain.CartItem) []ItemData {
	out := make([]ItemData, len(items))
	for i := range items {
		out[i] = ItemData{
			ProductID: items[i].ProductID,
			Name:      items[i].Name,
			UnitPrice: items[i].EffectivePrice().String(),
			Quantity:  items[i].Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event keyed by session.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal().String(),
		Items:     itemData(cart.Items),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, SourceShop, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, cart.SessionID, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, SourceShop, CartClearedData{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, sessionID, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)
	return nil
}

// PublishOrderPlaced publishes an order.placed event keyed by order ID.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:       order.ID,
		SessionID:     order.SessionID,
		IsGuest:       order.IsGuest,
		CustomerEmail: order.Customer.Email,
		Subtotal:      order.Totals.Subtotal.String(),
		Shipping:      order.Totals.Shipping.String(),
		Total:         order.Totals.Total.String(),
		PaymentMethod: order.PaymentMethod,
		Items:         itemData(order.Items),
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, SourceShop, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, order.ID, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
	)
	return nil
}
