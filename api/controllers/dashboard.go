package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/api/templates"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

const overviewFragmentPath = "/admin/fragments/overview"

// AdminDashboard renders the dashboard shell. The admin count loads through the overview
// fragment, so the card starts in its loading state.
func AdminDashboard(info templates.SystemInfo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authstate.FromContext(r.Context()).IsAdmin() {
			renderAccessDenied(w, r, logg)
			return
		}

		page := templates.Page("Admin dashboard",
			templates.Deferred("overview", overviewFragmentPath, templates.OverviewCard(0, true)),
			templates.PermissionsInfoCard(),
			templates.SystemInfoCard(info),
		)
		renderHTML(w, r, logg, http.StatusOK, page)
	}
}

// AdminOverviewFragment renders the admin count card and the admin table.
func AdminOverviewFragment(lister AdminLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := authstate.FromContext(r.Context())
		if !state.IsAdmin() || lister == nil {
			renderAccessDenied(w, r, logg)
			return
		}

		list := lister.ListAdmins(r.Context(), true)
		if list.Err != nil && logg != nil {
			logg.Error(r.Context(), "admin.overview.list_failed", list.Err)
		}
		// a failed read keeps the placeholder rather than showing a misleading zero
		loading := list.Loading || list.Err != nil
		fragment := templates.Fragment(
			templates.OverviewCard(len(list.Admins), loading),
			templates.AdminsTable(list),
		)
		renderHTML(w, r, logg, http.StatusOK, fragment)
	}
}

func renderAccessDenied(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	renderHTML(w, r, logg, http.StatusForbidden, templates.Page("Access denied", templates.AccessDenied()))
}

func renderHTML(w http.ResponseWriter, r *http.Request, logg *logger.Logger, status int, c templ.Component) {
	if err := templates.Render(w, r, status, c); err != nil && logg != nil {
		logg.Error(r.Context(), "render.failed", err)
	}
}
