package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/internal/authstate"
	pkgAuth "github.com/angelmondragon/storefront-admin/pkg/auth"
	"github.com/angelmondragon/storefront-admin/pkg/auth/session"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/google/uuid"
)

// StateResolver loads the auth state for a verified user id.
type StateResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (authstate.State, error)
}

// Auth resolves the caller from a bearer token or the access cookie and attaches an
// authstate.Context to the request. Requests without credentials continue as Anonymous;
// RequireUser and RequireAdmin enforce access.
func Auth(cfg config.JWTConfig, sessions session.Checker, resolver StateResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := extractToken(r, cfg.CookieName)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(authstate.WithContext(ctx, authstate.Anonymous())))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.ID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if sessions != nil {
				ok, err := sessions.Active(ctx, claims.ID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			state, err := resolver.Resolve(ctx, claims.UserID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user"))
				return
			}

			ctx = authstate.WithContext(ctx, state)
			if state.User() != nil {
				ctx = WithUserID(ctx, claims.UserID.String())
				ctx = WithSessionID(ctx, claims.ID)
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"user_id":    claims.UserID.String(),
						"actor_role": string(state.User().Role),
						"is_admin":   state.IsAdmin(),
					})
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without a resolved user.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authstate.Authenticated(authstate.FromContext(r.Context())) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests whose resolved user lacks the privilege flag.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := authstate.FromContext(r.Context())
			if !authstate.Authenticated(state) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if !state.IsAdmin() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookieName == "" {
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
