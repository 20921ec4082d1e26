package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

// BlogRepository implements repository.BlogRepository using PostgreSQL.
type BlogRepository struct {
	db DB
}

// NewBlogRepository creates a PostgreSQL-backed blog repository.
func NewBlogRepository(db DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, title, excerpt, body, author, cover_image, published, published_at, created_at`

// GetByID retrieves a published post by ID.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE id = $1 AND published`, blogColumns)

	var post domain.BlogPost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Excerpt,
		&post.Body,
		&post.Author,
		&post.CoverImage,
		&post.Published,
		&post.PublishedAt,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("blog post", id)
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}

	return &post, nil
}

// ListPublished returns published posts newest first with the total count.
func (r *BlogRepository) ListPublished(ctx context.Context, params pagination.Params) ([]domain.BlogPost, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM blog_posts
		WHERE published
		ORDER BY published_at DESC, id DESC
		LIMIT $1 OFFSET $2`,
		blogColumns,
	)

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var (
		posts      []domain.BlogPost
		totalCount int
	)

	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Excerpt,
			&post.Body,
			&post.Author,
			&post.CoverImage,
			&post.Published,
			&post.PublishedAt,
			&post.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan blog post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blog post rows: %w", err)
	}

	if posts == nil {
		posts = []domain.BlogPost{}
	}

	return posts, totalCount, nil
}
