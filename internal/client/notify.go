package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/pkg/httpclient"
)

// OrderNotifier posts new orders to the shop operator's webhook so they get
// pinged about orders to fulfil. The endpoint is third-party and flaky, so
// calls go through a circuit breaker.
type OrderNotifier struct {
	client     *httpclient.BreakerClient
	webhookURL string
	logger     *slog.Logger
}

// NewOrderNotifier creates a notifier for the given webhook URL.
func NewOrderNotifier(client *httpclient.BreakerClient, webhookURL string, logger *slog.Logger) *OrderNotifier {
	return &OrderNotifier{
		client:     client,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

type orderNotification struct {
	OrderID       string `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	City          string `json:"city"`
	ItemCount     int    `json:"item_count"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
}

// NotifyOrderPlaced posts the order summary to the webhook. A blank webhook
// URL disables notifications.
func (n *OrderNotifier) NotifyOrderPlaced(ctx context.Context, order *domain.Order) error {
	if n.webhookURL == "" {
		return nil
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	payload := orderNotification{
		OrderID:       order.ID,
		CustomerName:  order.Customer.FirstName + " " + order.Customer.LastName,
		CustomerPhone: order.Customer.Phone,
		City:          order.Customer.City,
		ItemCount:     itemCount,
		Total:         order.Totals.Total.String(),
		PaymentMethod: order.PaymentMethod,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal order notification: %w", err)
	}

	resp, err := n.client.Post(ctx, n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post order notification: %w", err)
	}
	defer resp.Body.Close()

	n.logger.DebugContext(ctx, "order notification delivered",
		slog.String("order_id", order.ID),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}
