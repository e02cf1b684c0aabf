package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-admin/api/controllers"
	"github.com/angelmondragon/storefront-admin/api/middleware"
	"github.com/angelmondragon/storefront-admin/api/templates"
	"github.com/angelmondragon/storefront-admin/internal/auth"
	"github.com/angelmondragon/storefront-admin/internal/cart"
	"github.com/angelmondragon/storefront-admin/internal/catalog"
	"github.com/angelmondragon/storefront-admin/pkg/auth/session"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/metrics"
	pkgredis "github.com/angelmondragon/storefront-admin/pkg/redis"
)

// Dependencies are the services the router mounts. Nil redis surfaces disable rate limiting
// and idempotency.
type Dependencies struct {
	Pingers     map[string]controllers.Pinger
	RateLimiter pkgredis.RateLimiter
	Idempotency pkgredis.IdempotencyStore
	Sessions    session.Checker
	Resolver    middleware.StateResolver

	Auth        auth.Service
	Register    auth.RegisterService
	Admins      controllers.AdminLister
	Provisioner controllers.AdminProvisioner
	Profiles    controllers.ProfileLister
	Catalog     catalog.Service
	Cart        cart.Service

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	SystemInfo     templates.SystemInfo
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Auth(cfg.JWT, deps.Sessions, deps.Resolver, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	idempotent := middleware.Idempotency(deps.Idempotency, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Pingers, logg))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// storefront pages
	r.Get("/", controllers.Landing(cfg.Admin.LandingRoute, deps.Cart, logg))
	r.Get("/cart/icon", controllers.CartIconFragment(deps.Cart, logg))
	r.Post("/cart/open", controllers.CartOpen())
	r.Get("/cart", controllers.CartPage(deps.Cart, logg))

	// admin pages render their own access denied view
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", controllers.AdminDashboard(deps.SystemInfo, logg))
		r.Get("/fragments/overview", controllers.AdminOverviewFragment(deps.Admins, logg))
		r.Get("/catalog", controllers.AdminCatalogPage(deps.Catalog, logg))
		r.Get("/users", controllers.AdminUsersPage(deps.Profiles, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).Post("/login", controllers.AuthLogin(deps.Auth, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg), idempotent).
			Post("/register", controllers.AuthRegister(deps.Register, deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, cfg.JWT, logg))
		r.With(middleware.RequireUser(logg)).Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.RequireUser(logg))
		r.Get("/", controllers.CartGet(deps.Cart, logg))
		r.With(idempotent).Post("/items", controllers.CartAddItem(deps.Cart, logg))
		r.Patch("/items/{productID}", controllers.CartUpdateItem(deps.Cart, logg))
		r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/admins", controllers.AdminsList(deps.Admins, logg))
		r.With(idempotent).Post("/admins", controllers.AdminsProvision(deps.Provisioner, logg))
		r.Get("/users", controllers.UsersList(deps.Profiles, logg))

		r.Get("/services", controllers.ServicesList(deps.Catalog, logg))
		r.With(idempotent).Post("/services", controllers.ServicesCreate(deps.Catalog, logg))
		r.Patch("/services/{id}", controllers.ServicesUpdate(deps.Catalog, logg))
		r.Delete("/services/{id}", controllers.ServicesDelete(deps.Catalog, logg))

		r.Get("/products", controllers.ProductsList(deps.Catalog, logg))
		r.With(idempotent).Post("/products", controllers.ProductsCreate(deps.Catalog, logg))
		r.Patch("/products/{id}", controllers.ProductsUpdate(deps.Catalog, logg))
		r.Delete("/products/{id}", controllers.ProductsDelete(deps.Catalog, logg))
	})

	return r
}
