package postgres

import (
	"context"
	"errors"
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

var productCols = []string{
	"id", "name", "description", "category", "subcategory", "age_group", "material", "use_case",
	"list_price", "sale_price", "image_url", "featured", "active", "created_at", "updated_at",
}

func newProductTestFixture(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewProductRepository(mock), mock
}

func productRow(rows *pgxmock.Rows, id string, createdAt time.Time, salePrice decimal.NullDecimal) *pgxmock.Rows {
	sub := "Counting Frames"
	return rows.AddRow(
		id, "Wooden Abacus", "A classic counting toy", "Maths", &sub, (*string)(nil), (*string)(nil), (*string)(nil),
		decimal.NewFromInt(45), salePrice, "abacus.jpg", false, true, createdAt, createdAt,
	)
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	sale := decimal.NullDecimal{Decimal: decimal.NewFromInt(35), Valid: true}
	rows := productRow(pgxmock.NewRows(productCols), "prod-1", now, sale)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs("prod-1").
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", p.ID)
	require.NotNil(t, p.SalePrice)
	assert.True(t, decimal.NewFromInt(35).Equal(*p.SalePrice))
	assert.True(t, decimal.NewFromInt(35).Equal(p.EffectivePrice()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs("prod-missing").
		WillReturnRows(pgxmock.NewRows(productCols))

	_, err := repo.GetByID(context.Background(), "prod-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListPage_FullPageHasCursor(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	none := decimal.NullDecimal{}
	rows := pgxmock.NewRows(productCols)
	productRow(rows, "prod-1", now, none)
	productRow(rows, "prod-2", now.Add(-time.Minute), none)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(2).
		WillReturnRows(rows)

	page, err := repo.ListPage(context.Background(), domain.FilterState{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "prod-2", page.NextCursor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListPage_PartialPageNoCursor(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := productRow(pgxmock.NewRows(productCols), "prod-1", now, decimal.NullDecimal{})

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(2).
		WillReturnRows(rows)

	page, err := repo.ListPage(context.Background(), domain.FilterState{}, nil, 2)
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Nil(t, page.NextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListPage_CursorAndFacetArgs(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	cursor := &pagination.Cursor{CreatedAt: now, ID: "prod-20"}
	filter := domain.FilterState{Subcategories: []string{" Counting Frames "}}

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs([]string{"counting frames"}, now, "prod-20", 20).
		WillReturnRows(pgxmock.NewRows(productCols))

	page, err := repo.ListPage(context.Background(), filter, cursor, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Nil(t, page.NextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Search_PrefixLowercased(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := productRow(pgxmock.NewRows(productCols), "prod-1", now, decimal.NullDecimal{})

	mock.ExpectQuery("SELECT (.+) FROM products WHERE active AND LOWER\\(name\\) LIKE").
		WithArgs("wood%", 10).
		WillReturnRows(rows)

	products, err := repo.Search(context.Background(), "  Wood ", 10)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListSubcategories(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"bucket"}).
		AddRow("Counting Frames").
		AddRow("Flashcards").
		AddRow("Other")

	mock.ExpectQuery("SELECT DISTINCT").
		WillReturnRows(rows)

	buckets, err := repo.ListSubcategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Counting Frames", "Flashcards", "Other"}, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListOnSale_QueryError(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(8).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListOnSale(context.Background(), 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list on-sale products")
	assert.NoError(t, mock.ExpectationsWereMet())
}
