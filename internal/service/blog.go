package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

// BlogsPerPage is the article grid page size.
const BlogsPerPage = 6

// BlogService serves the storefront blog.
type BlogService struct {
	posts  repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a blog service.
func NewBlogService(posts repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		posts:  posts,
		logger: logger,
	}
}

// List returns a page of published posts, newest first.
func (s *BlogService) List(ctx context.Context, page int) (pagination.Result[domain.BlogPost], error) {
	if page < 1 {
		page = 1
	}

	params := pagination.Params{
		Page:    page,
		PerPage: BlogsPerPage,
		Offset:  (page - 1) * BlogsPerPage,
	}

	posts, total, err := s.posts.ListPublished(ctx, params)
	if err != nil {
		return pagination.Result[domain.BlogPost]{}, fmt.Errorf("list blog posts: %w", err)
	}

	return pagination.NewResult(posts, total, params), nil
}

// Get returns a single published post.
func (s *BlogService) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("post id is required")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return post, nil
}
