package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-admin/internal/authstate"
	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/auth"
	"github.com/angelmondragon/storefront-admin/pkg/auth/session"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	"github.com/angelmondragon/storefront-admin/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60, CookieName: "sf_access"}

type stubSessions struct {
	ok  bool
	err error
}

func (s stubSessions) Active(context.Context, string) (bool, error) {
	return s.ok, s.err
}

type stubResolver struct {
	state authstate.State
	err   error
	calls int
}

func (s *stubResolver) Resolve(context.Context, uuid.UUID) (authstate.State, error) {
	s.calls++
	return s.state, s.err
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID:   userID,
		Username: "ada",
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	require.NoError(t, err)
	return token
}

func captureState(got *authstate.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = authstate.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthWithoutCredentialsIsAnonymous(t *testing.T) {
	resolver := &stubResolver{}
	var got authstate.Context
	handler := Auth(testJWT, stubSessions{ok: true}, resolver, nil)(captureState(&got))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, authstate.Authenticated(got))
	assert.Zero(t, resolver.calls)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, stubSessions{ok: true}, &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	handler := Auth(testJWT, stubSessions{ok: false}, &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New(), enums.UserRoleUser))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthSessionStoreFailureIsDependencyError(t *testing.T) {
	handler := Auth(testJWT, stubSessions{err: errors.New("redis down")}, &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New(), enums.UserRoleUser))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestAuthReadsCookieAndAttachesState(t *testing.T) {
	userID := uuid.New()
	resolver := &stubResolver{state: authstate.Resolved(&users.UserDTO{ID: userID, Username: "ada", Role: enums.UserRoleUser}, true)}

	var got authstate.Context
	var gotUserID, gotSession string
	handler := Auth(testJWT, stubSessions{ok: true}, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = authstate.FromContext(r.Context())
		gotUserID = UserIDFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_access", Value: mintTestToken(t, userID, enums.UserRoleUser)})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, userID.String(), gotUserID)
	assert.NotEmpty(t, gotSession)
	assert.Equal(t, 1, resolver.calls)
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guarded := RequireAdmin(nil)(ok)
	user := &users.UserDTO{ID: uuid.New(), Role: enums.UserRoleUser}

	cases := []struct {
		name  string
		state authstate.State
		want  int
	}{
		{name: "anonymous", state: authstate.Anonymous(), want: http.StatusUnauthorized},
		{name: "loading", state: authstate.Pending(), want: http.StatusUnauthorized},
		{name: "shopper", state: authstate.Resolved(user, false), want: http.StatusForbidden},
		{name: "admin", state: authstate.Resolved(user, true), want: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(authstate.WithContext(req.Context(), tc.state))
			resp := httptest.NewRecorder()
			guarded.ServeHTTP(resp, req)
			assert.Equal(t, tc.want, resp.Code)
		})
	}
}

func TestRequireUser(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guarded := RequireUser(nil)(ok)

	resp := httptest.NewRecorder()
	guarded.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(authstate.WithContext(req.Context(), authstate.Resolved(&users.UserDTO{ID: uuid.New()}, false)))
	resp = httptest.NewRecorder()
	guarded.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}
