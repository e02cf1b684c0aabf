package templates

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/internal/admins"
	"github.com/angelmondragon/storefront-admin/internal/cart"
	"github.com/angelmondragon/storefront-admin/internal/catalog"
	"github.com/angelmondragon/storefront-admin/internal/profiles"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestOverviewCardStates(t *testing.T) {
	loading := render(t, OverviewCard(7, true))
	assert.Contains(t, loading, `data-testid="admin-count">...</p>`)
	assert.NotContains(t, loading, ">7<")

	zero := render(t, OverviewCard(0, false))
	assert.Contains(t, zero, `data-testid="admin-count">0</p>`)

	three := render(t, OverviewCard(3, false))
	assert.Contains(t, three, `data-testid="admin-count">3</p>`)
}

func TestStaticCards(t *testing.T) {
	assert.Contains(t, render(t, PermissionsInfoCard()), "Admin permissions")
	assert.Contains(t, render(t, AccessDenied()), "Access denied")

	info := render(t, SystemInfoCard(SystemInfo{Service: "storefront-admin", Environment: "dev"}))
	assert.Contains(t, info, "<dd>storefront-admin</dd>")
	assert.Contains(t, info, "<dd>dev</dd>")
	assert.Contains(t, info, "<dd>unknown</dd>")
}

func TestTabSelectorSelectInvokesCallbackOnce(t *testing.T) {
	var calls []enums.AdminTab
	selector := TabSelector{
		Active:   enums.AdminTabServices,
		OnChange: func(tab enums.AdminTab) { calls = append(calls, tab) },
	}

	selector.Select(enums.AdminTabProducts)

	assert.Equal(t, []enums.AdminTab{enums.AdminTabProducts}, calls)
	assert.Equal(t, enums.AdminTabServices, selector.Active)
}

func TestTabSelectorWithoutCallbackIsInert(t *testing.T) {
	selector := TabSelector{Active: enums.AdminTabServices}
	selector.Select(enums.AdminTabProducts)
	assert.Equal(t, enums.AdminTabServices, selector.Active)
}

func TestTabSelectorRenderMarksActiveTab(t *testing.T) {
	html := render(t, TabSelector{Active: enums.AdminTabProducts})
	assert.Contains(t, html, `hx-get="/admin/catalog?tab=services"`)
	assert.Contains(t, html, `hx-get="/admin/catalog?tab=products"`)
	assert.Equal(t, 1, strings.Count(html, `aria-selected="true"`))
	assert.Contains(t, html, `class="tab tab-active" aria-selected="true" hx-get="/admin/catalog?tab=products"`)
}

func TestCartIconBadge(t *testing.T) {
	empty := render(t, CartIcon(cart.StaticCounter(0), "/cart/open"))
	assert.NotContains(t, empty, "cart-count")
	assert.Contains(t, empty, `hx-post="/cart/open"`)

	three := render(t, CartIcon(cart.StaticCounter(3), "/cart/open"))
	assert.Contains(t, three, `data-testid="cart-count">3</span>`)

	assert.NotContains(t, render(t, CartIcon(nil, "/cart/open")), "cart-count")
}

func TestAdminsTableStates(t *testing.T) {
	assert.Contains(t, render(t, AdminsTable(admins.AdminList{Loading: true})), "Loading admins")
	assert.Contains(t, render(t, AdminsTable(admins.AdminList{Err: errors.New("down")})), "Could not load admins")
	assert.Contains(t, render(t, AdminsTable(admins.AdminList{})), "No admins yet")

	html := render(t, AdminsTable(admins.AdminList{Admins: []admins.AdminRecord{{
		UserID:    uuid.New(),
		Username:  "<ada>",
		CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}}}))
	assert.Contains(t, html, "&lt;ada&gt;")
	assert.Contains(t, html, "2026-01-05")
}

func TestUsersTablePagination(t *testing.T) {
	items := []profiles.Profile{{ID: uuid.New(), Username: "ada", Email: "ada@example.com", OrderCount: 2, TotalSpent: decimal.RequireFromString("15"), IsAdmin: true}}

	html := render(t, UsersTable(items, "/admin/users?cursor=abc"))
	assert.Contains(t, html, "15.00")
	assert.Contains(t, html, `<span class="badge">admin</span>`)
	assert.Contains(t, html, `hx-get="/admin/users?cursor=abc"`)

	assert.NotContains(t, render(t, UsersTable(items, "")), "Next page")
	assert.Contains(t, render(t, UsersTable(nil, "")), "No users found")
}

func TestCatalogTableFollowsTab(t *testing.T) {
	services := []catalog.ServiceDTO{{Name: "Grooming", Price: decimal.NewFromInt(40), IsActive: true}}
	products := []catalog.ProductDTO{{Name: "Leash", Price: decimal.RequireFromString("9.5"), StockQuantity: 4}}

	svcHTML := render(t, CatalogTable(enums.AdminTabServices, services, products))
	assert.Contains(t, svcHTML, "Grooming")
	assert.NotContains(t, svcHTML, "Leash")

	prodHTML := render(t, CatalogTable(enums.AdminTabProducts, services, products))
	assert.Contains(t, prodHTML, "Leash")
	assert.Contains(t, prodHTML, "9.50")
	assert.NotContains(t, prodHTML, "Grooming")
}

func TestRenderBuffersAndSetsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	require.NoError(t, Render(rec, req, http.StatusForbidden, Page("Denied", AccessDenied())))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>Denied</title>")

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return errors.New("boom") })
	rec = httptest.NewRecorder()
	assert.Error(t, Render(rec, req, http.StatusOK, failing))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeferredWrapsPlaceholder(t *testing.T) {
	html := render(t, Deferred("overview", "/admin/fragments/overview", OverviewCard(0, true)))
	assert.True(t, strings.HasPrefix(html, `<div id="overview" hx-get="/admin/fragments/overview" hx-trigger="load"`))
	assert.Contains(t, html, "...")
}
