package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

const productColumns = `id, name, description, category, subcategory, age_group, material, use_case,
	list_price, sale_price, image_url, featured, active, created_at, updated_at`

// effectivePriceExpr mirrors Product.EffectivePrice in SQL so price filters
// match what customers see.
const effectivePriceExpr = `CASE WHEN sale_price IS NOT NULL AND sale_price < list_price THEN sale_price ELSE list_price END`

// subcategoryExpr folds blank and NULL subcategories into the Other bucket.
const subcategoryExpr = `LOWER(COALESCE(NULLIF(TRIM(subcategory), ''), 'Other'))`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a PostgreSQL-backed product repository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID retrieves an active product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND active`, productColumns)

	p, err := r.scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs retrieves the active products among ids.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1) AND active`, productColumns)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// ListPage returns up to limit active products matching filter, newest first,
// continuing after cursor when one is given. NextCursor is set when the page
// came back full, meaning another page may follow.
func (r *ProductRepository) ListPage(ctx context.Context, filter domain.FilterState, cursor *pagination.Cursor, limit int) (repository.ProductPage, error) {
	var (
		conditions = []string{"active"}
		args       []any
		argIndex   = 1
	)

	if len(filter.Subcategories) > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", subcategoryExpr, argIndex))
		args = append(args, normalizeAll(filter.Subcategories))
		argIndex++
	}

	if len(filter.AgeGroups) > 0 {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(age_group)) = ANY($%d)", argIndex))
		args = append(args, normalizeAll(filter.AgeGroups))
		argIndex++
	}

	if len(filter.Materials) > 0 {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(material)) = ANY($%d)", argIndex))
		args = append(args, normalizeAll(filter.Materials))
		argIndex++
	}

	if len(filter.UseCases) > 0 {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(use_case)) = ANY($%d)", argIndex))
		args = append(args, normalizeAll(filter.UseCases))
		argIndex++
	}

	if filter.PriceMin != nil && filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("%s BETWEEN $%d AND $%d", effectivePriceExpr, argIndex, argIndex+1))
		args = append(args, *filter.PriceMin, *filter.PriceMax)
		argIndex += 2
	}

	if cursor != nil {
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, cursor.CreatedAt, cursor.ID)
		argIndex += 2
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`,
		productColumns, strings.Join(conditions, " AND "), argIndex,
	)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return repository.ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := r.collectProducts(rows)
	if err != nil {
		return repository.ProductPage{}, err
	}

	page := repository.ProductPage{Products: products}
	if len(products) == limit && limit > 0 {
		last := products[len(products)-1]
		page.NextCursor = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	return page, nil
}

// Search returns active products whose name starts with query,
// case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE active AND LOWER(name) LIKE $1
		ORDER BY name
		LIMIT $2`,
		productColumns,
	)

	pattern := strings.ToLower(strings.TrimSpace(query)) + "%"

	rows, err := r.db.Query(ctx, sql, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// ListOnSale returns active products currently discounted below list price.
func (r *ProductRepository) ListOnSale(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE active AND sale_price IS NOT NULL AND sale_price < list_price
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		productColumns,
	)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list on-sale products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// ListFeatured returns active featured products.
func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE active AND featured
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		productColumns,
	)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// ListSubcategories returns the distinct subcategory buckets of the active
// catalog, Other included when applicable.
func (r *ProductRepository) ListSubcategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT COALESCE(NULLIF(TRIM(subcategory), ''), 'Other') AS bucket
		FROM products
		WHERE active
		ORDER BY bucket`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var buckets []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan subcategory row: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategory rows: %w", err)
	}

	if buckets == nil {
		buckets = []string{}
	}
	return buckets, nil
}

func (r *ProductRepository) collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *ProductRepository) scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p         domain.Product
		salePrice decimal.NullDecimal
	)

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Subcategory,
		&p.AgeGroup,
		&p.Material,
		&p.UseCase,
		&p.ListPrice,
		&salePrice,
		&p.ImageURL,
		&p.Featured,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if salePrice.Valid {
		p.SalePrice = &salePrice.Decimal
	}

	return &p, nil
}

func normalizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
