package domain

import "time"

// BlogPost is an article on the storefront blog.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}
