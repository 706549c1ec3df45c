package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/middleware"
	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/services"
)

func setupAuth(t *testing.T) (*Auth, *services.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := services.NewSessionStore(client)
	auth := NewAuth(&config.Config{
		GitHubClientID:     "client-id",
		GitHubClientSecret: "client-secret",
		GitHubCallbackURL:  "http://localhost:8080/github/callback",
	}, sessions)
	return auth, sessions
}

// fakeGitHub serves the token exchange and the /user profile endpoint.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"gho_test","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":123,"login":"ada","name":"Ada Lovelace","avatar_url":"https://avatars.example.com/ada.png"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func stateCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == stateCookie {
			return cookie
		}
	}
	t.Fatal("state cookie not set")
	return nil
}

func TestLogin_RedirectsToGitHub(t *testing.T) {
	auth, _ := setupAuth(t)

	rec := httptest.NewRecorder()
	auth.Login(rec, httptest.NewRequest(http.MethodGet, "/github/login", nil))

	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "github.com", location.Host)
	assert.Equal(t, "client-id", location.Query().Get("client_id"))

	cookie := stateCookieFrom(t, rec)
	assert.Equal(t, cookie.Value, location.Query().Get("state"))
	assert.True(t, cookie.HttpOnly)
}

func TestCallback_StateMismatchReturns400(t *testing.T) {
	auth, _ := setupAuth(t)

	req := httptest.NewRequest(http.MethodGet, "/github/callback?code=abc&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "expected"})

	rec := httptest.NewRecorder()
	auth.Callback(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid OAuth state")
}

func TestCallback_MissingCodeReturns400(t *testing.T) {
	auth, _ := setupAuth(t)

	req := httptest.NewRequest(http.MethodGet, "/github/callback?state=s1", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "s1"})

	rec := httptest.NewRecorder()
	auth.Callback(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallback_CreatesSessionFromGitHubProfile(t *testing.T) {
	auth, sessions := setupAuth(t)
	srv := fakeGitHub(t)
	auth.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/authorize",
		TokenURL: srv.URL + "/token",
	}
	auth.apiURL = srv.URL

	req := httptest.NewRequest(http.MethodGet, "/github/callback?code=abc&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "s1"})

	rec := httptest.NewRecorder()
	auth.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var sessionValue string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			sessionValue = cookie.Value
		}
	}
	require.NotEmpty(t, sessionValue, "session cookie not set")

	identity, ok, err := sessions.Validate(context.Background(), sessionValue)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Identity{
		GitHubID:  123,
		Login:     "ada",
		Name:      "Ada Lovelace",
		AvatarURL: "https://avatars.example.com/ada.png",
	}, identity)
}

func TestRoot_ReportsLoginState(t *testing.T) {
	auth, sessions := setupAuth(t)

	rec := httptest.NewRecorder()
	auth.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Logged Out", rec.Body.String())

	token, err := sessions.Create(context.Background(), models.Identity{Login: "ada", Name: "Ada Lovelace"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})

	rec = httptest.NewRecorder()
	auth.Root(rec, req)
	assert.Equal(t, "logged in as Ada Lovelace", rec.Body.String())
}

func TestLogout_InvalidatesSession(t *testing.T) {
	auth, sessions := setupAuth(t)

	token, err := sessions.Create(context.Background(), models.Identity{Login: "ada"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})

	rec := httptest.NewRecorder()
	auth.Logout(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok, err := sessions.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok)
}
