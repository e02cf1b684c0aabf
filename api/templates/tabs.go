package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
)

// TabSelector switches the catalog page between services and products. The caller owns Active.
type TabSelector struct {
	Active   enums.AdminTab
	OnChange func(enums.AdminTab)
	// Path is the hx-get target; the tab is passed as ?tab=.
	Path   string
	Target string
}

// Select reports tab to OnChange exactly once. Active is left untouched.
func (s TabSelector) Select(tab enums.AdminTab) {
	if s.OnChange != nil {
		s.OnChange(tab)
	}
}

func (s TabSelector) Render(ctx context.Context, w io.Writer) error {
	path := s.Path
	if path == "" {
		path = "/admin/catalog"
	}
	target := s.Target
	if target == "" {
		target = "#catalog"
	}

	h := &htmlWriter{w: w}
	h.raw(`<div class="tabs" role="tablist">`)
	for _, tab := range enums.AdminTabs() {
		class := "tab"
		selected := "false"
		if tab == s.Active {
			class = "tab tab-active"
			selected = "true"
		}
		href := path + "?" + url.Values{"tab": {tab.String()}}.Encode()
		h.raw(`<button type="button" role="tab" class="`)
		h.text(class)
		h.raw(`" aria-selected="`)
		h.raw(selected)
		h.raw(`" hx-get="`)
		h.text(href)
		h.raw(`" hx-target="`)
		h.text(target)
		h.raw(`" hx-push-url="true">`)
		h.text(tab.Label())
		h.raw(`</button>`)
	}
	h.raw(`</div>`)
	return h.err
}

var _ templ.Component = TabSelector{}
