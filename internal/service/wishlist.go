package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
)

// CartAdder is the slice of the cart service the wishlist needs for
// move-to-cart.
type CartAdder interface {
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error)
}

// WishlistService implements saved-for-later lists. Only product IDs are
// stored; listings join against the live catalog so prices stay current.
type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	cart      CartAdder
	logger    *slog.Logger
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository, cart CartAdder, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
		cart:      cart,
		logger:    logger,
	}
}

func (s *WishlistService) getOrCreate(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	wishlist, err := s.wishlists.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewWishlist(sessionID), nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return wishlist, nil
}

// List returns the catalog products on the session's wishlist, preserving
// the order they were saved in. IDs whose products have been retired are
// dropped silently.
func (s *WishlistService) List(ctx context.Context, sessionID string) ([]domain.Product, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wishlist, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(wishlist.ProductIDs) == 0 {
		return []domain.Product{}, nil
	}

	products, err := s.products.GetByIDs(ctx, wishlist.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("get wishlist products: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]domain.Product, 0, len(products))
	for _, id := range wishlist.ProductIDs {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

// Add saves a product to the wishlist. Adding one already there is a no-op.
func (s *WishlistService) Add(ctx context.Context, sessionID, productID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("get product for wishlist: %w", err)
	}

	wishlist, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	if !wishlist.Add(productID) {
		return nil
	}

	wishlist.UpdatedAt = time.Now().UTC()
	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)
	return nil
}

// Remove takes a product off the wishlist. Removing an absent product is a
// no-op.
func (s *WishlistService) Remove(ctx context.Context, sessionID, productID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	wishlist, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	if !wishlist.Remove(productID) {
		return nil
	}

	wishlist.UpdatedAt = time.Now().UTC()
	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)
	return nil
}

// Contains reports whether the product is on the session's wishlist, for
// rendering the heart toggle.
func (s *WishlistService) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	if sessionID == "" {
		return false, apperrors.InvalidInput("session id is required")
	}

	wishlist, err := s.getOrCreate(ctx, sessionID)
	if err != nil {
		return false, err
	}

	return wishlist.Contains(productID), nil
}

// MoveToCart adds the wishlisted product to the cart with quantity 1 and
// removes it from the wishlist. The wishlist is only touched after the cart
// add succeeds.
func (s *WishlistService) MoveToCart(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.cart.AddItem(ctx, sessionID, AddItemInput{ProductID: productID, Quantity: 1})
	if err != nil {
		return nil, err
	}

	if err := s.Remove(ctx, sessionID, productID); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "wishlist product moved to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// Clear empties the session's wishlist.
func (s *WishlistService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.wishlists.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("session_id", sessionID),
	)
	return nil
}
