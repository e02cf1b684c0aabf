package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-admin/api/templates"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	"github.com/angelmondragon/storefront-admin/internal/cart"
	"github.com/angelmondragon/storefront-admin/internal/redirect"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

// Landing sends resolved admins to the admin landing route and renders the storefront home
// for everyone else.
func Landing(adminRoute string, svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := authstate.FromContext(r.Context())
		nav := redirect.NewHTTPNavigator(w, r)
		if redirect.NewGuard(adminRoute, nav).Observe(state) {
			if logg != nil {
				logg.Debug(r.Context(), "landing.redirect_admin")
			}
			return
		}

		page := templates.Page("Storefront",
			templates.CartIcon(cartCounter(r, svc, logg), cartOpenPath),
			templates.Welcome(state.User()),
		)
		renderHTML(w, r, logg, http.StatusOK, page)
	}
}
