package repository

import (
	"context"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

// CartRepository persists session carts.
type CartRepository interface {
	// Get returns the cart for sessionID. Returns apperrors.ErrNotFound when
	// no cart exists.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	// Save stores the cart, overwriting any previous state.
	Save(ctx context.Context, cart *domain.Cart) error
	// Delete removes the cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// WishlistRepository persists session wishlists.
type WishlistRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, sessionID string) error
}

// ProfileRepository caches customer profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, userID string) error
}

// ProductPage is one keyset-paginated slice of the catalog.
type ProductPage struct {
	Products   []domain.Product
	NextCursor *pagination.Cursor
}

// ProductRepository reads the catalog.
type ProductRepository interface {
	// GetByID returns an active product by ID.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs returns the active products among ids, in no guaranteed order.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	// ListPage returns up to limit active products matching filter, ordered
	// by created_at then id descending, starting after cursor when set.
	ListPage(ctx context.Context, filter domain.FilterState, cursor *pagination.Cursor, limit int) (ProductPage, error)
	// Search returns active products whose name starts with the query,
	// case-insensitively, up to limit.
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
	// ListOnSale returns active products with a sale price below list.
	ListOnSale(ctx context.Context, limit int) ([]domain.Product, error)
	// ListFeatured returns active featured products.
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	// ListSubcategories returns the distinct subcategories of active
	// products, with the Other bucket appended when any product lacks one.
	ListSubcategories(ctx context.Context) ([]string, error)
}

// OrderRepository persists placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]domain.Order, int, error)
}

// BlogRepository reads published blog posts.
type BlogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	// ListPublished returns published posts newest first, with the total
	// count for page controls.
	ListPublished(ctx context.Context, params pagination.Params) ([]domain.BlogPost, int, error)
}
