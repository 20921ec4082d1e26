package domain

import "time"

// Wishlist holds the product IDs a session has saved for later. Only IDs are
// stored so listings always reflect current catalog data.
type Wishlist struct {
	SessionID  string    `json:"session_id"`
	ProductIDs []string  `json:"product_ids"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewWishlist returns an empty wishlist for the session.
func NewWishlist(sessionID string) *Wishlist {
	return &Wishlist{
		SessionID:  sessionID,
		ProductIDs: []string{},
		UpdatedAt:  time.Now().UTC(),
	}
}

// Contains reports whether productID is already saved.
func (w *Wishlist) Contains(productID string) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Add appends productID unless it is already present. Returns true when the
// wishlist changed.
func (w *Wishlist) Add(productID string) bool {
	if w.Contains(productID) {
		return false
	}
	w.ProductIDs = append(w.ProductIDs, productID)
	return true
}

// Remove deletes productID if present. Returns true when the wishlist
// changed.
func (w *Wishlist) Remove(productID string) bool {
	for i, id := range w.ProductIDs {
		if id == productID {
			w.ProductIDs = append(w.ProductIDs[:i], w.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}
