package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/api/templates"
	"github.com/angelmondragon/storefront-admin/api/validators"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	"github.com/angelmondragon/storefront-admin/internal/profiles"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
)

const maxCursorLen = 256

type ProfileLister interface {
	List(ctx context.Context, params pagination.Params) (pagination.Page[profiles.Profile], error)
}

// UsersList returns one cursor page of user profiles.
func UsersList(lister ProfileLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user listing unavailable"))
			return
		}
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := lister.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminUsersPage renders the user table. htmx requests for further pages receive only the table.
func AdminUsersPage(lister ProfileLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authstate.FromContext(r.Context()).IsAdmin() || lister == nil {
			renderAccessDenied(w, r, logg)
			return
		}
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := lister.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		nextURL := ""
		if page.HasMore() {
			q := url.Values{"cursor": {page.NextCursor}, "limit": {strconv.Itoa(pagination.NormalizeLimit(params.Limit))}}
			nextURL = r.URL.Path + "?" + q.Encode()
		}
		table := templates.UsersTable(page.Items, nextURL)
		if r.Header.Get("HX-Request") == "true" {
			renderHTML(w, r, logg, http.StatusOK, table)
			return
		}
		renderHTML(w, r, logg, http.StatusOK, templates.Page("Users", table))
	}
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: validators.SanitizeString(r.URL.Query().Get("cursor"), maxCursorLen)}, nil
}
