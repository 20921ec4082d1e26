package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlist_AddIsIdempotent(t *testing.T) {
	w := NewWishlist("sess-1")

	assert.True(t, w.Add("p1"))
	assert.False(t, w.Add("p1"))
	assert.Equal(t, []string{"p1"}, w.ProductIDs)
}

func TestWishlist_Remove(t *testing.T) {
	w := NewWishlist("sess-1")
	w.Add("p1")
	w.Add("p2")

	assert.True(t, w.Remove("p1"))
	assert.False(t, w.Remove("p1"))
	assert.Equal(t, []string{"p2"}, w.ProductIDs)
}

func TestWishlist_Contains(t *testing.T) {
	w := NewWishlist("sess-1")
	w.Add("p1")

	assert.True(t, w.Contains("p1"))
	assert.False(t, w.Contains("p2"))
}
