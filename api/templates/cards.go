package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// OverviewCard shows the admin count, or an ellipsis while it loads. Zero renders as "0".
func OverviewCard(adminCount int, isLoading bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		value := strconv.Itoa(adminCount)
		if isLoading {
			value = "..."
		}
		h := &htmlWriter{w: w}
		h.raw(`<div class="card" data-card="overview"><h3>Overview</h3><p>Total admins</p><p class="text-3xl font-bold" data-testid="admin-count">`)
		h.text(value)
		h.raw(`</p></div>`)
		return h.err
	})
}

func PermissionsInfoCard() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card" data-card="permissions"><h3>Admin permissions</h3><ul>` +
			`<li>View and manage admin accounts</li>` +
			`<li>Create, edit and remove services and products</li>` +
			`<li>Review registered users and their orders</li>` +
			`</ul></div>`)
		return h.err
	})
}

// SystemInfo is the build and runtime detail shown on the dashboard.
type SystemInfo struct {
	Service     string
	Environment string
	Version     string
	StartedAt   string
}

func SystemInfoCard(info SystemInfo) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card" data-card="system"><h3>System information</h3><dl>`)
		row := func(label, value string) {
			if value == "" {
				value = "unknown"
			}
			h.raw(`<dt>`)
			h.text(label)
			h.raw(`</dt><dd>`)
			h.text(value)
			h.raw(`</dd>`)
		}
		row("Service", info.Service)
		row("Environment", info.Environment)
		row("Version", info.Version)
		row("Started", info.StartedAt)
		h.raw(`</dl></div>`)
		return h.err
	})
}

func AccessDenied() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card" data-card="access-denied" role="alert"><h2>Access denied</h2>` +
			`<p>You do not have permission to view this page.</p><a href="/">Back to the store</a></div>`)
		return h.err
	})
}
