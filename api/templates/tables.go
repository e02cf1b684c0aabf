package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/internal/admins"
	"github.com/angelmondragon/storefront-admin/internal/catalog"
	"github.com/angelmondragon/storefront-admin/internal/profiles"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
)

const dateLayout = "2006-01-02"

// AdminsTable renders the admin listing in its loading, failed, empty or populated state.
func AdminsTable(list admins.AdminList) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="admins"><h2>Admins</h2>`)
		switch {
		case list.Loading:
			h.raw(`<p class="muted">Loading admins...</p>`)
		case list.Err != nil:
			h.raw(`<p class="error" role="alert">Could not load admins.</p>`)
		case len(list.Admins) == 0:
			h.raw(`<p class="muted">No admins yet.</p>`)
		default:
			h.raw(`<table><thead><tr><th>Username</th><th>User ID</th><th>Added</th></tr></thead><tbody>`)
			for _, a := range list.Admins {
				h.raw(`<tr><td>`)
				h.text(a.Username)
				h.raw(`</td><td><code>`)
				h.text(a.UserID.String())
				h.raw(`</code></td><td>`)
				h.text(formatDate(a.CreatedAt))
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`</section>`)
		return h.err
	})
}

// UsersTable renders one page of user profiles; nextURL is empty on the last page.
func UsersTable(items []profiles.Profile, nextURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="users"><h2>Users</h2>`)
		if len(items) == 0 {
			h.raw(`<p class="muted">No users found.</p></section>`)
			return h.err
		}
		h.raw(`<table><thead><tr><th>Username</th><th>Email</th><th>Orders</th><th>Total spent</th><th>Status</th><th>Joined</th></tr></thead><tbody>`)
		for _, p := range items {
			h.raw(`<tr><td>`)
			h.text(p.Username)
			if p.IsAdmin {
				h.raw(` <span class="badge">admin</span>`)
			}
			h.raw(`</td><td>`)
			h.text(p.Email)
			h.raw(`</td><td>`)
			h.text(strconv.FormatInt(p.OrderCount, 10))
			h.raw(`</td><td>`)
			h.text(p.TotalSpent.StringFixed(2))
			h.raw(`</td><td>`)
			if p.IsBlocked {
				h.raw(`<span class="badge badge-error">blocked</span>`)
			} else {
				h.raw(`active`)
			}
			h.raw(`</td><td>`)
			h.text(formatDate(p.CreatedAt))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		if nextURL != "" {
			h.raw(`<button type="button" hx-get="`)
			h.text(nextURL)
			h.raw(`" hx-target="#users" hx-swap="outerHTML">Next page</button>`)
		}
		h.raw(`</section>`)
		return h.err
	})
}

// CatalogTable lists the rows of the active tab.
func CatalogTable(tab enums.AdminTab, services []catalog.ServiceDTO, products []catalog.ProductDTO) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="catalog-table" data-tab="`)
		h.text(tab.String())
		h.raw(`">`)
		if tab == enums.AdminTabProducts {
			renderProducts(h, products)
		} else {
			renderServices(h, services)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func renderServices(h *htmlWriter, services []catalog.ServiceDTO) {
	if len(services) == 0 {
		h.raw(`<p class="muted">No services yet.</p>`)
		return
	}
	h.raw(`<table><thead><tr><th>Name</th><th>Category</th><th>Price</th><th>Active</th></tr></thead><tbody>`)
	for _, s := range services {
		h.raw(`<tr><td>`)
		h.text(s.Name)
		h.raw(`</td><td>`)
		h.text(s.Category)
		h.raw(`</td><td>`)
		h.text(s.Price.StringFixed(2))
		h.raw(`</td><td>`)
		h.text(yesNo(s.IsActive))
		h.raw(`</td></tr>`)
	}
	h.raw(`</tbody></table>`)
}

func renderProducts(h *htmlWriter, products []catalog.ProductDTO) {
	if len(products) == 0 {
		h.raw(`<p class="muted">No products yet.</p>`)
		return
	}
	h.raw(`<table><thead><tr><th>Name</th><th>Category</th><th>Price</th><th>Stock</th><th>Active</th></tr></thead><tbody>`)
	for _, p := range products {
		h.raw(`<tr><td>`)
		h.text(p.Name)
		h.raw(`</td><td>`)
		h.text(p.Category)
		h.raw(`</td><td>`)
		h.text(p.Price.StringFixed(2))
		h.raw(`</td><td>`)
		h.text(strconv.Itoa(p.StockQuantity))
		h.raw(`</td><td>`)
		h.text(yesNo(p.IsActive))
		h.raw(`</td></tr>`)
	}
	h.raw(`</tbody></table>`)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
