package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafascerqueira/v-storefront/pkg/health"
	"github.com/rafascerqueira/v-storefront/pkg/middleware"
)

// RouterConfig carries the routing-level knobs.
type RouterConfig struct {
	ServiceName    string
	RequestTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	CORS           middleware.CORSConfig
	Cookies        CookieConfig
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Cart       *CartHandler
	Catalog    *CatalogHandler
	BackOffice *BackOfficeHandler
	Admin      *AdminHandler

	Authenticator Authenticator
	Health        *health.Handler
}

// NewRouter builds the full storefront route tree: anonymous catalog routes
// behind the catalog-session cookie and a per-IP rate limit, back-office
// routes behind the session cookie, admin routes behind the role guard.
func NewRouter(cfg RouterConfig, h Handlers, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(log))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/healthz", h.Health.LivenessHandler())
	r.Get("/readyz", h.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public storefront: anonymous, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))
		r.Use(CatalogSession(cfg.Cookies))

		r.Get("/catalog/products", h.Catalog.ListProducts)
		r.Get("/catalog/products/{productID}", h.Catalog.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productID}", h.Cart.UpdateQuantity)
			r.Delete("/items/{productID}", h.Cart.RemoveItem)
			r.Post("/prefill", h.Cart.Prefill)
		})

		r.Post("/checkout", h.Catalog.Checkout)
	})

	// Back office: authenticated sellers and admins.
	r.Route("/backoffice", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))
			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/register", h.Auth.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionAuth(h.Authenticator, cfg.Cookies, log))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Get("/subscription/usage", h.BackOffice.Usage)
			r.Post("/subscription/usage/refresh", h.BackOffice.RefreshUsage)
			r.Get("/plans", h.BackOffice.Plans)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin(log))
				r.Get("/stats", h.Admin.Stats)
				r.Get("/active-users", h.Admin.ActiveUsers)
				r.Get("/accounts", h.Admin.Accounts)
				r.Get("/logs", h.Admin.Logs)
				r.Get("/health", h.Admin.Health)
			})

			r.Route("/{resource}", func(r chi.Router) {
				r.Get("/", h.BackOffice.List)
				r.Post("/", h.BackOffice.Create)
				r.Get("/{id}", h.BackOffice.Get)
				r.Put("/{id}", h.BackOffice.Update)
				r.Delete("/{id}", h.BackOffice.Delete)
			})
		})
	})

	return r
}
