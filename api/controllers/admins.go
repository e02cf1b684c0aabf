package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/api/validators"
	"github.com/angelmondragon/storefront-admin/internal/admins"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

type AdminLister interface {
	ListAdmins(ctx context.Context, callerIsAdmin bool) admins.AdminList
}

type AdminProvisioner interface {
	Provision(ctx context.Context, email string) bool
}

// AdminsList returns the admin associations exactly as read.
func AdminsList(lister AdminLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin listing unavailable"))
			return
		}

		state := authstate.FromContext(r.Context())
		list := lister.ListAdmins(r.Context(), state.IsAdmin())
		if list.Err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, list.Err, "list admins"))
			return
		}
		records := list.Admins
		if records == nil {
			records = []admins.AdminRecord{}
		}
		responses.WriteSuccess(w, records)
	}
}

// AdminsProvision grants admin rights to the account with the given email. Failures are
// reported as {"success": false} with status 200; the cause is in the logs.
func AdminsProvision(provisioner AdminProvisioner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provisioner == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin provisioning unavailable"))
			return
		}

		var body admins.ProvisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok := provisioner.Provision(r.Context(), body.Email)
		responses.WriteJSON(w, http.StatusOK, admins.ProvisionResult{Success: ok})
	}
}
