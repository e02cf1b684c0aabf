package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/internal/cart"
)

// CartIcon renders the cart button; the count badge appears only for a non-empty cart.
func CartIcon(counter cart.Counter, onClickURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		total := 0
		if counter != nil {
			total = counter.TotalItems()
		}
		h := &htmlWriter{w: w}
		h.raw(`<button type="button" class="cart-icon relative" aria-label="Cart" hx-post="`)
		h.text(onClickURL)
		h.raw(`" hx-swap="none"><svg class="h-6 w-6" viewBox="0 0 24 24" aria-hidden="true">` +
			`<path d="M3 3h2l.4 2M7 13h10l4-8H5.4M7 13L5.4 5M7 13l-2.3 2.3c-.6.6-.2 1.7.7 1.7H17"/></svg>`)
		if total > 0 {
			h.raw(`<span class="badge" data-testid="cart-count">`)
			h.text(strconv.Itoa(total))
			h.raw(`</span>`)
		}
		h.raw(`</button>`)
		return h.err
	})
}
