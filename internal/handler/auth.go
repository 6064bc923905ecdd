package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/service"
)

const stateCookie = "oauth_state"

// AuthHandler manages login, signup, the Google OAuth flow, and session
// cookies.
//
// The session itself is a JWT issued by the service layer; this handler only
// decides how it travels (an HttpOnly cookie) and where the browser goes
// next. Provider access tokens pass through individual requests and are
// never stored.
type AuthHandler struct {
	auth        *service.AuthService
	oauth       *auth.OAuthFlow
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler. frontendURL is where OAuth
// callbacks send the browser after establishing a session.
func NewAuthHandler(authService *service.AuthService, oauth *auth.OAuthFlow, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:        authService,
		oauth:       oauth,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type processOAuthRequest struct {
	AccessToken string `json:"access_token"`
}

// HandleLogin signs in with email/password via the identity provider.
//
// HTTP: POST /login
// BODY: {"email": "...", "password": "..."}
//
// On success the session JWT is set as an HttpOnly cookie and the local user
// is returned. Invalid credentials are 401 with a deliberately generic
// detail.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.LoginWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    result.User,
	})
}

// HandleSignup registers a new account.
//
// HTTP: POST /signup
// BODY: {"email": "...", "password": "...", "name": "..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "signup successful",
		"user":    result.User,
	})
}

// HandleStatus reports whether the caller has a valid session.
//
// HTTP: GET /auth/status
//
// Always 200 — "not logged in" is a normal answer here, not an error. The
// route sits behind OptionalAuth so a valid cookie yields the user.
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		// A session pointing at a deleted user is treated as logged out.
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user,
	})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /auth/logout
//
// Stateless sessions mean logout is purely client-side: the JWT stays valid
// until expiry, but without the cookie the browser can't present it.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleGoogleLogin starts the OAuth flow by redirecting the browser to the
// provider's hosted Google sign-in.
//
// HTTP: GET /auth/google
//
// A random state value goes into a short-lived cookie; the callback verifies
// it to stop CSRF-initiated flows.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.oauth.Configured() {
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Status: http.StatusBadGateway,
			Detail: "OAuth sign-in is not configured",
		})
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback completes the OAuth flow: verify state, exchange the code
// for a provider token, resolve the user, set the session cookie, and send
// the browser back to the frontend.
//
// HTTP: GET /auth/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || r.URL.Query().Get("state") != cookie.Value {
		h.logger.Warn("oauth callback: state mismatch")
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: http.StatusBadRequest,
			Detail: "invalid OAuth state",
		})
		return
	}

	// Single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("oauth callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, h.frontendURL+"/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: http.StatusBadRequest,
			Detail: "missing OAuth code",
		})
		return
	}

	accessToken, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: code exchange failed", slog.String("error", err.Error()))
		http.Redirect(w, r, h.frontendURL+"/?auth=failed", http.StatusSeeOther)
		return
	}

	result, err := h.auth.LoginWithProviderToken(r.Context(), accessToken)
	if err != nil {
		h.logger.Error("oauth callback: session setup failed", slog.String("error", err.Error()))
		http.Redirect(w, r, h.frontendURL+"/?auth=failed", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, result.Token)
	http.Redirect(w, r, h.frontendURL, http.StatusSeeOther)
}

// HandleProcessOAuth establishes a session from a provider access token the
// frontend obtained by completing the OAuth flow in the browser.
//
// HTTP: POST /auth/process-oauth
// BODY: {"access_token": "..."}
func (h *AuthHandler) HandleProcessOAuth(w http.ResponseWriter, r *http.Request) {
	var req processOAuthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.LoginWithProviderToken(r.Context(), req.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    result.User,
	})
}

// setSessionCookie stores the session JWT.
//
// HttpOnly keeps it away from scripts; SameSite=Lax sends it on top-level
// navigations but not cross-site POSTs. Secure should be enabled behind
// HTTPS in production.
func setSessionCookie(w http.ResponseWriter, token string) {
	if token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
