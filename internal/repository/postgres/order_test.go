package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

var orderCols = []string{
	"id", "user_id", "is_guest", "session_id", "customer", "items",
	"subtotal", "shipping", "total", "payment_method", "status", "created_at", "updated_at",
}

func newOrderTestFixture(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewOrderRepository(mock), mock
}

func sampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:        "ord-1",
		IsGuest:   true,
		SessionID: "sess-1",
		Customer: domain.CustomerInfo{
			FirstName: "Ama",
			LastName:  "Mensah",
			Email:     "ama@example.com",
			Phone:     "+233201234567",
			Address:   "12 Ring Road",
			City:      "Accra",
			Region:    "Greater Accra",
		},
		Items: []domain.CartItem{
			{ProductID: "prod-1", Name: "Wooden Abacus", ListPrice: decimal.NewFromInt(45), Quantity: 2},
		},
		Totals: domain.OrderTotals{
			Subtotal: decimal.NewFromInt(90),
			Shipping: decimal.NewFromInt(20),
			Total:    decimal.NewFromInt(110),
		},
		PaymentMethod: "momo",
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderRepository_Create_Success(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	order := sampleOrder(t)

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			order.ID, order.UserID, order.IsGuest, order.SessionID,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
			order.Totals.Subtotal, order.Totals.Shipping, order.Totals.Total,
			order.PaymentMethod, order.Status, order.CreatedAt, order.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), order)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	order := sampleOrder(t)
	customerJSON, err := json.Marshal(order.Customer)
	require.NoError(t, err)
	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)

	rows := pgxmock.NewRows(orderCols).AddRow(
		order.ID, order.UserID, order.IsGuest, order.SessionID, customerJSON, itemsJSON,
		order.Totals.Subtotal, order.Totals.Shipping, order.Totals.Total,
		order.PaymentMethod, order.Status, order.CreatedAt, order.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id =").
		WithArgs("ord-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "Ama", got.Customer.FirstName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.IsGuest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id =").
		WithArgs("ord-missing").
		WillReturnRows(pgxmock.NewRows(orderCols))

	_, err := repo.GetByID(context.Background(), "ord-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUser(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	order := sampleOrder(t)
	userID := "user-1"
	order.UserID = &userID
	order.IsGuest = false

	customerJSON, err := json.Marshal(order.Customer)
	require.NoError(t, err)
	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)

	rows := pgxmock.NewRows(append(orderCols, "total_count")).AddRow(
		order.ID, order.UserID, order.IsGuest, order.SessionID, customerJSON, itemsJSON,
		order.Totals.Subtotal, order.Totals.Shipping, order.Totals.Total,
		order.PaymentMethod, order.Status, order.CreatedAt, order.UpdatedAt, 7,
	)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	orders, total, err := repo.ListByUser(context.Background(), "user-1", pagination.Params{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
