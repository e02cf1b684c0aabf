// Package redirect sends privileged users to the admin landing route once their identity resolves.
package redirect

import (
	"net/http"
	"sync"

	"github.com/angelmondragon/storefront-admin/internal/authstate"
)

// Navigator replaces the current history entry with route.
type Navigator interface {
	Replace(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Replace(route string) { f(route) }

// Guard is a one-shot transition: it navigates when a resolved, privileged user is observed and
// re-arms only after that condition stops holding. It renders nothing.
type Guard struct {
	mu     sync.Mutex
	target string
	nav    Navigator
	fired  bool
}

func NewGuard(target string, nav Navigator) *Guard {
	return &Guard{target: target, nav: nav}
}

// Observe is called on every change of (user, privilege flag, loading flag) and reports whether it
// navigated. While loading nothing happens, whatever the other inputs are.
func (g *Guard) Observe(state authstate.Context) bool {
	if state == nil || state.Loading() {
		return false
	}

	g.mu.Lock()
	qualifies := state.User() != nil && state.IsAdmin()
	if !qualifies {
		g.fired = false
		g.mu.Unlock()
		return false
	}
	if g.fired {
		g.mu.Unlock()
		return false
	}
	g.fired = true
	g.mu.Unlock()

	g.nav.Replace(g.target)
	return true
}

// Fired reports whether the guard has navigated for the current qualifying state.
func (g *Guard) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// Attach subscribes the guard to store so every state change is observed.
func (g *Guard) Attach(store *authstate.Store) {
	store.Subscribe(func(c authstate.Context) { g.Observe(c) })
}

// HTTPNavigator turns Replace into a 303 response. htmx requests get HX-Location so the client
// swaps the history entry instead of following a redirect.
type HTTPNavigator struct {
	w         http.ResponseWriter
	r         *http.Request
	navigated bool
}

func NewHTTPNavigator(w http.ResponseWriter, r *http.Request) *HTTPNavigator {
	return &HTTPNavigator{w: w, r: r}
}

func (n *HTTPNavigator) Replace(route string) {
	if n.navigated {
		return
	}
	n.navigated = true
	if n.r.Header.Get("HX-Request") == "true" {
		n.w.Header().Set("HX-Replace-Url", route)
		n.w.Header().Set("HX-Location", route)
		n.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(n.w, n.r, route, http.StatusSeeOther)
}

// Navigated reports whether a response was written.
func (n *HTTPNavigator) Navigated() bool {
	return n.navigated
}
