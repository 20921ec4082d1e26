package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kenworld/edughana-shop/internal/service"
	"github.com/Kenworld/edughana-shop/pkg/health"
	"github.com/Kenworld/edughana-shop/pkg/middleware"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
	Blog     *service.BlogService
	Account  *service.AccountService
}

// RouterConfig carries the router's cross-cutting settings.
type RouterConfig struct {
	JWTSecret      string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("edughana-shop"))
	r.Use(middleware.Tracing("edughana-shop"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(svcs.Catalog)
	cartHandler := NewCartHandler(svcs.Cart)
	wishlistHandler := NewWishlistHandler(svcs.Wishlist)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout)
	blogHandler := NewBlogHandler(svcs.Blog)
	accountHandler := NewAccountHandler(svcs.Account)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.With(SessionRequired).Get("/", catalogHandler.List)
			r.Get("/search", catalogHandler.Search)
			r.Get("/on-sale", catalogHandler.OnSale)
			r.Get("/featured", catalogHandler.Featured)
			r.Get("/categories", catalogHandler.Subcategories)
			r.Get("/{productID}", catalogHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(SessionRequired)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Get("/summary", cartHandler.Summary)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(SessionRequired)

			r.Get("/", wishlistHandler.List)
			r.Delete("/", wishlistHandler.Clear)

			r.Post("/items", wishlistHandler.Add)
			r.Get("/items/{productID}", wishlistHandler.Status)
			r.Delete("/items/{productID}", wishlistHandler.Remove)
			r.Post("/items/{productID}/move-to-cart", wishlistHandler.MoveToCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(SessionRequired)
			r.Use(OptionalAuth(cfg.JWTSecret))

			r.Get("/totals", checkoutHandler.Totals)
			r.Post("/", checkoutHandler.PlaceOrder)
		})

		r.Get("/orders/{orderID}", checkoutHandler.GetOrder)

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/{postID}", blogHandler.Get)
		})

		r.Route("/account", func(r chi.Router) {
			r.Use(RequireAuth(cfg.JWTSecret))

			r.Get("/profile", accountHandler.GetProfile)
			r.Put("/profile", accountHandler.UpdateProfile)
			r.Get("/orders", accountHandler.Orders)
		})
	})

	return r
}
