// Package templates holds the server-rendered HTML components of the admin UI and storefront.
package templates

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components read as straight-line markup.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Page wraps body components in the shared document shell.
func Page(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body class="min-h-screen bg-gray-50"><main class="container mx-auto p-6">`)
		for _, c := range body {
			h.component(ctx, c)
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// Render writes c with the given status; the body is buffered so a render error still yields a 500.
func Render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Deferred renders placeholder inside a container that htmx replaces with the response of
// url once the page has loaded.
func Deferred(id, url string, placeholder templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="`)
		h.text(id)
		h.raw(`" hx-get="`)
		h.text(url)
		h.raw(`" hx-trigger="load" hx-swap="innerHTML">`)
		h.component(ctx, placeholder)
		h.raw(`</div>`)
		return h.err
	})
}

// Fragment renders components back to back without a wrapper, for htmx swaps.
func Fragment(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		for _, c := range components {
			h.component(ctx, c)
		}
		return h.err
	})
}

// Section wraps c in an element with the given id, used as an htmx swap target.
func Section(id string, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="`)
		h.text(id)
		h.raw(`">`)
		h.component(ctx, c)
		h.raw(`</section>`)
		return h.err
	})
}
