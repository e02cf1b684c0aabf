package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-admin/api/middleware"
	"github.com/angelmondragon/storefront-admin/api/templates"
	"github.com/angelmondragon/storefront-admin/internal/admins"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	"github.com/angelmondragon/storefront-admin/internal/cart"
	"github.com/angelmondragon/storefront-admin/internal/catalog"
	"github.com/angelmondragon/storefront-admin/internal/profiles"
	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

func asAdmin(r *http.Request) *http.Request {
	ctx := authstate.WithContext(r.Context(), authstate.Resolved(&users.UserDTO{Username: "root"}, true))
	return r.WithContext(ctx)
}

func asUser(r *http.Request, id uuid.UUID) *http.Request {
	ctx := authstate.WithContext(r.Context(), authstate.Resolved(&users.UserDTO{ID: id, Username: "shopper"}, false))
	ctx = middleware.WithUserID(ctx, id.String())
	return r.WithContext(ctx)
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadyReportsEveryFailure(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"db":    pingerFunc(func(context.Context) error { return errors.New("down") }),
		"redis": pingerFunc(func(context.Context) error { return errors.New("timeout") }),
	}

	rec := httptest.NewRecorder()
	HealthReady(cfg, deps, testLogger)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "db: down")
	assert.Contains(t, rec.Body.String(), "redis: timeout")
}

func TestHealthReadyOK(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{"db": pingerFunc(func(context.Context) error { return nil })}

	rec := httptest.NewRecorder()
	HealthReady(cfg, deps, testLogger)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Storefront-Env"))
	assert.JSONEq(t, `{"data":{"status":"ready"}}`, rec.Body.String())
}

type stubLister struct {
	list admins.AdminList
}

func (s stubLister) ListAdmins(context.Context, bool) admins.AdminList { return s.list }

type stubProvisioner struct {
	ok    bool
	email string
}

func (s *stubProvisioner) Provision(_ context.Context, email string) bool {
	s.email = email
	return s.ok
}

func TestAdminsListReturnsRecords(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	lister := stubLister{list: admins.AdminList{Admins: []admins.AdminRecord{{UserID: id, CreatedAt: created, Username: "ada"}}}}

	rec := httptest.NewRecorder()
	AdminsList(lister, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/api/admin/v1/admins", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"user_id":"00000000-0000-0000-0000-000000000001","created_at":"2024-01-02T03:04:05Z","username":"ada"}]}`, rec.Body.String())
}

func TestAdminsListEmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminsList(stubLister{}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestAdminsListReadFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminsList(stubLister{list: admins.AdminList{Err: errors.New("boom")}}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminsProvision(t *testing.T) {
	for _, ok := range []bool{true, false} {
		prov := &stubProvisioner{ok: ok}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/admins", strings.NewReader(`{"email":"ada@example.com"}`))
		AdminsProvision(prov, testLogger)(rec, asAdmin(req))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ada@example.com", prov.email)
		if ok {
			assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		} else {
			assert.JSONEq(t, `{"success":false}`, rec.Body.String())
		}
	}
}

func TestAdminsProvisionForwardsUnmatchedAddress(t *testing.T) {
	prov := &stubProvisioner{ok: false}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	AdminsProvision(prov, testLogger)(rec, asAdmin(req))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nope", prov.email)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())
}

func TestAdminsProvisionRejectsMissingEmail(t *testing.T) {
	prov := &stubProvisioner{ok: true}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	AdminsProvision(prov, testLogger)(rec, asAdmin(req))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, prov.email)
}

func TestAdminDashboardAccess(t *testing.T) {
	handler := AdminDashboard(templates.SystemInfo{Service: "storefront"}, testLogger)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")

	rec = httptest.NewRecorder()
	handler(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hx-get="/admin/fragments/overview"`)
	assert.Contains(t, body, `data-testid="admin-count">...</p>`)
	assert.Contains(t, body, "storefront")
}

func TestAdminOverviewFragment(t *testing.T) {
	list := admins.AdminList{Admins: []admins.AdminRecord{{Username: "ada"}, {Username: "grace"}}}

	rec := httptest.NewRecorder()
	AdminOverviewFragment(stubLister{list: list}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-testid="admin-count">2</p>`)
	assert.Contains(t, rec.Body.String(), "grace")

	rec = httptest.NewRecorder()
	AdminOverviewFragment(stubLister{list: admins.AdminList{Err: errors.New("x")}}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Contains(t, rec.Body.String(), `data-testid="admin-count">...</p>`)
}

type stubCatalog struct {
	catalog.Service
	services     []catalog.ServiceDTO
	products     []catalog.ProductDTO
	createdForm  catalog.FormData
	deletedID    uuid.UUID
	productCalls int
}

func (s *stubCatalog) ListServices(context.Context, bool) ([]catalog.ServiceDTO, error) {
	return s.services, nil
}

func (s *stubCatalog) ListProducts(context.Context, bool) ([]catalog.ProductDTO, error) {
	s.productCalls++
	return s.products, nil
}

func (s *stubCatalog) CreateService(_ context.Context, form catalog.FormData) (*catalog.ServiceDTO, error) {
	s.createdForm = form
	return &catalog.ServiceDTO{Name: form.Name}, nil
}

func (s *stubCatalog) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

func TestAdminCatalogPageSelectsTabAndRemembersIt(t *testing.T) {
	svc := &stubCatalog{
		services: []catalog.ServiceDTO{{Name: "Tune-up"}},
		products: []catalog.ProductDTO{{Name: "Chain"}},
	}
	handler := AdminCatalogPage(svc, testLogger)

	rec := httptest.NewRecorder()
	handler(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/catalog", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tune-up")
	assert.Zero(t, svc.productCalls)

	rec = httptest.NewRecorder()
	handler(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/catalog?tab=products", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chain")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "products", cookies[0].Value)

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/admin/catalog", nil))
	req.AddCookie(cookies[0])
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Contains(t, rec.Body.String(), `class="tab tab-active" aria-selected="true" hx-get="/admin/catalog?tab=products"`)
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestAdminCatalogPageRejectsUnknownTab(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminCatalogPage(&stubCatalog{}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/catalog?tab=orders", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServicesCreate(t *testing.T) {
	svc := &stubCatalog{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/services", strings.NewReader(`{"name":"Fitting","price":"45.00","category":"bikes"}`))
	ServicesCreate(svc, testLogger)(rec, asAdmin(req))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "45.00", svc.createdForm.Price)
}

func TestProductsDeleteParsesID(t *testing.T) {
	svc := &stubCatalog{}
	router := chi.NewRouter()
	router.Delete("/products/{id}", ProductsDelete(svc, testLogger))

	id := uuid.New()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, svc.deletedID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubProfiles struct {
	params pagination.Params
	page   pagination.Page[profiles.Profile]
}

func (s *stubProfiles) List(_ context.Context, params pagination.Params) (pagination.Page[profiles.Profile], error) {
	s.params = params
	return s.page, nil
}

func TestUsersListPassesPagination(t *testing.T) {
	lister := &stubProfiles{page: pagination.Page[profiles.Profile]{Items: []profiles.Profile{{Username: "ada"}}, NextCursor: "abc"}}

	rec := httptest.NewRecorder()
	UsersList(lister, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?limit=10&cursor=xyz", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagination.Params{Limit: 10, Cursor: "xyz"}, lister.params)
	assert.Contains(t, rec.Body.String(), `"next_cursor":"abc"`)
}

func TestUsersListRejectsBadLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	UsersList(&stubProfiles{}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/?limit=1000", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUsersPageLinksNextPage(t *testing.T) {
	lister := &stubProfiles{page: pagination.Page[profiles.Profile]{Items: []profiles.Profile{{Username: "ada"}}, NextCursor: "abc"}}

	rec := httptest.NewRecorder()
	AdminUsersPage(lister, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/users?limit=5", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-get="/admin/users?cursor=abc&amp;limit=5"`)
}

type stubCart struct {
	cart.Service
	view    *cart.CartView
	added   int
}

func (s *stubCart) Items(context.Context, uuid.UUID) (*cart.CartView, error) { return s.view, nil }

func (s *stubCart) AddItem(_ context.Context, _, _ uuid.UUID, qty int) error {
	s.added = qty
	return nil
}

func TestCartAddItemRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+uuid.NewString()+`","quantity":1}`))
	CartAddItem(&stubCart{}, testLogger)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartAddItemReturnsCart(t *testing.T) {
	svc := &stubCart{view: &cart.CartView{TotalItems: 2}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+uuid.NewString()+`","quantity":2}`))
	CartAddItem(svc, testLogger)(rec, asUser(req, uuid.New()))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, svc.added)
	assert.Contains(t, rec.Body.String(), `"total_items":2`)
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	svc := &stubCart{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"`+uuid.NewString()+`","quantity":0}`))
	CartAddItem(svc, testLogger)(rec, asUser(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.added)
}

func TestCartIconFragmentAnonymousShowsNoBadge(t *testing.T) {
	rec := httptest.NewRecorder()
	CartIconFragment(&stubCart{}, testLogger)(rec, httptest.NewRequest(http.MethodGet, "/cart/icon", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/cart/open"`)
	assert.NotContains(t, rec.Body.String(), "cart-count")
}

func TestCartOpenNavigatesClientSide(t *testing.T) {
	rec := httptest.NewRecorder()
	CartOpen()(rec, httptest.NewRequest(http.MethodPost, "/cart/open", nil))
	assert.Equal(t, "/cart", rec.Header().Get("HX-Location"))
}

func TestLandingRedirectsAdmins(t *testing.T) {
	rec := httptest.NewRecorder()
	Landing("/admin", &stubCart{}, testLogger)(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestLandingRendersForShoppers(t *testing.T) {
	rec := httptest.NewRecorder()
	Landing("/admin", nil, testLogger)(rec, asUser(httptest.NewRequest(http.MethodGet, "/", nil), uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome back, shopper")
	assert.Contains(t, rec.Body.String(), `aria-label="Cart"`)
}
