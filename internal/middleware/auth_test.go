package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/services"
)

func setupGate(t *testing.T) (*services.SessionStore, func(http.Handler) http.Handler) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := services.NewSessionStore(client)
	return sessions, RequireAuth(sessions)
}

func TestRequireAuth_NoSessionReturns401(t *testing.T) {
	_, gate := setupGate(t)

	nextCalled := false
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/entries", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "You do not have access.")
	assert.False(t, nextCalled, "gate must short-circuit before the handler")
}

func TestRequireAuth_UnknownTokenReturns401(t *testing.T) {
	_, gate := setupGate(t)

	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/goals/123", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidCookiePassesIdentity(t *testing.T) {
	sessions, gate := setupGate(t)

	token, err := sessions.Create(context.Background(), models.Identity{GitHubID: 7, Login: "ada"})
	require.NoError(t, err)

	var got models.Identity
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		got = identity
	}))

	req := httptest.NewRequest(http.MethodPost, "/entries", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada", got.Login)
	assert.Equal(t, int64(7), got.GitHubID)
}

func TestRequireAuth_BearerTokenAccepted(t *testing.T) {
	sessions, gate := setupGate(t)

	token, err := sessions.Create(context.Background(), models.Identity{Login: "ada"})
	require.NoError(t, err)

	handlerRan := false
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}))

	req := httptest.NewRequest(http.MethodPut, "/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerRan)
}

func TestSessionToken_Precedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionToken(req))

	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", SessionToken(req))

	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", SessionToken(req))
}
