package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/internal/cart"
	"github.com/angelmondragon/storefront-admin/internal/users"
)

// Welcome greets the signed-in user, or invites a visitor to sign in.
func Welcome(user *users.UserDTO) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="hero">`)
		if user == nil {
			h.raw(`<h1>Welcome</h1><p>Sign in to start shopping.</p>`)
		} else {
			h.raw(`<h1>Welcome back, `)
			h.text(user.Username)
			h.raw(`</h1>`)
		}
		h.raw(`</section>`)
		return h.err
	})
}

func CartSummary(view *cart.CartView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="cart"><h2>Your cart</h2>`)
		if view == nil || len(view.Lines) == 0 {
			h.raw(`<p class="muted">Your cart is empty.</p></section>`)
			return h.err
		}
		h.raw(`<table><thead><tr><th>Product</th><th>Price</th><th>Quantity</th><th>Subtotal</th></tr></thead><tbody>`)
		for _, line := range view.Lines {
			h.raw(`<tr><td>`)
			h.text(line.Name)
			h.raw(`</td><td>`)
			h.text(line.UnitPrice.StringFixed(2))
			h.raw(`</td><td>`)
			h.text(strconv.Itoa(line.Quantity))
			h.raw(`</td><td>`)
			h.text(line.Subtotal.StringFixed(2))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table><p class="total">Total: <strong data-testid="cart-total">`)
		h.text(view.Total.StringFixed(2))
		h.raw(`</strong></p></section>`)
		return h.err
	})
}
