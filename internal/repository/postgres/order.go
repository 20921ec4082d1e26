package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Customer details and order lines are stored as JSONB since they are
// snapshots never queried field-by-field.
type OrderRepository struct {
	db DB
}

// NewOrderRepository creates a PostgreSQL-backed order repository.
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, is_guest, session_id, customer, items,
	subtotal, shipping, total, payment_method, status, created_at, updated_at`

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	customerJSON, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, is_guest, session_id, customer, items,
			subtotal, shipping, total, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.IsGuest,
		order.SessionID,
		customerJSON,
		itemsJSON,
		order.Totals.Subtotal,
		order.Totals.Shipping,
		order.Totals.Total,
		order.PaymentMethod,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListByUser returns a user's orders newest first with the total count.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]domain.Order, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		orderColumns,
	)

	rows, err := r.db.Query(ctx, query, userID, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.Order
		totalCount int
	)

	for rows.Next() {
		var (
			order        domain.Order
			customerJSON []byte
			itemsJSON    []byte
		)

		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.IsGuest,
			&order.SessionID,
			&customerJSON,
			&itemsJSON,
			&order.Totals.Subtotal,
			&order.Totals.Shipping,
			&order.Totals.Total,
			&order.PaymentMethod,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if err := unmarshalOrderBlobs(&order, customerJSON, itemsJSON); err != nil {
			return nil, 0, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, totalCount, nil
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order        domain.Order
		customerJSON []byte
		itemsJSON    []byte
	)

	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.IsGuest,
		&order.SessionID,
		&customerJSON,
		&itemsJSON,
		&order.Totals.Subtotal,
		&order.Totals.Shipping,
		&order.Totals.Total,
		&order.PaymentMethod,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := unmarshalOrderBlobs(&order, customerJSON, itemsJSON); err != nil {
		return nil, err
	}

	return &order, nil
}

func unmarshalOrderBlobs(order *domain.Order, customerJSON, itemsJSON []byte) error {
	if err := json.Unmarshal(customerJSON, &order.Customer); err != nil {
		return fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return fmt.Errorf("unmarshal items: %w", err)
	}
	return nil
}
