package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/middleware"
	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/services"
)

const stateCookie = "daybook_oauth_state"

// Auth serves the GitHub OAuth login flow and turns a successful callback
// into a Redis-backed session.
type Auth struct {
	sessions *services.SessionStore
	oauth    *oauth2.Config
	apiURL   string // GitHub API base, overridable in tests
	secure   bool   // mark cookies Secure in production
}

// NewAuth builds the auth handlers from the GitHub app credentials.
func NewAuth(cfg *config.Config, sessions *services.SessionStore) *Auth {
	return &Auth{
		sessions: sessions,
		oauth: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubCallbackURL,
			Endpoint:     github.Endpoint,
		},
		apiURL: "https://api.github.com",
		secure: cfg.IsProduction(),
	}
}

// Login redirects to GitHub's authorize page with a fresh state token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.oauth.AuthCodeURL(state), http.StatusFound)
}

// githubUser is the subset of GitHub's /user payload the session needs.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Callback exchanges the authorization code, loads the GitHub profile and
// attaches the identity to a new session.
func (a *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid OAuth state"})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing authorization code"})
		return
	}

	token, err := a.oauth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("GitHub code exchange failed: %v", err)
		writeJSON(w, http.StatusBadGateway, messageResponse{Message: "GitHub login failed"})
		return
	}

	profile, err := a.fetchProfile(r, token)
	if err != nil {
		log.Printf("GitHub profile fetch failed: %v", err)
		writeJSON(w, http.StatusBadGateway, messageResponse{Message: "GitHub login failed"})
		return
	}

	sessionToken, err := a.sessions.Create(r.Context(), models.Identity{
		GitHubID:  profile.ID,
		Login:     profile.Login,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Error creating session",
			Error:   err.Error(),
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(services.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *Auth) fetchProfile(r *http.Request, token *oauth2.Token) (*githubUser, error) {
	client := a.oauth.Client(r.Context(), token)
	resp, err := client.Get(a.apiURL + "/user")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github /user returned %d", resp.StatusCode)
	}

	var profile githubUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout invalidates the session and clears the cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := a.sessions.Invalidate(r.Context(), token); err != nil {
			log.Printf("session invalidation failed: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// Root reports the login state as plain text.
func (a *Auth) Root(w http.ResponseWriter, r *http.Request) {
	identity, ok, err := a.sessions.Validate(r.Context(), middleware.SessionToken(r))
	if err != nil || !ok {
		w.Write([]byte("Logged Out"))
		return
	}
	fmt.Fprintf(w, "logged in as %s", identity.DisplayName())
}
