package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sakif/devhub/internal/apperror"
)

// ProviderUser is the portion of the identity provider's user object we care
// about. The provider returns a much larger payload — we only decode the
// fields we need, once, here at the boundary. Nothing downstream ever probes
// raw provider responses.
type ProviderUser struct {
	ID       string       `json:"id"` // stable external user ID (UUID string)
	Email    string       `json:"email"`
	Metadata userMetadata `json:"user_metadata"`
}

type userMetadata struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	UserName string `json:"user_name"` // OAuth-linked handle, e.g. a GitHub login
}

// DisplayName returns the best available human-readable name, which can be
// empty for plain email/password accounts.
func (u *ProviderUser) DisplayName() string {
	if u.Metadata.FullName != "" {
		return u.Metadata.FullName
	}
	return u.Metadata.Name
}

// providerError is the provider's error body. Depending on the endpoint the
// provider populates either error_description or msg; message() picks
// whichever is set.
type providerError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

func (e *providerError) message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Msg != "":
		return e.Msg
	case e.Code != "":
		return e.Code
	}
	return "authentication failed"
}

// signInResponse is the success body of the password grant: a token pair
// plus the authenticated user.
type signInResponse struct {
	AccessToken string        `json:"access_token"`
	User        *ProviderUser `json:"user"`
}

// Provider is a typed client for a GoTrue-compatible identity provider
// (sign-in, sign-up, token-to-user resolution, sign-out).
//
// Every response is decoded exactly once into either a success struct or a
// providerError — call sites receive (*ProviderUser, error) and never see
// the wire shapes.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProvider creates a Provider for the given API root and publishable key.
func NewProvider(baseURL, apiKey string) *Provider {
	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the provider credentials are present. The
// server starts without them, but auth endpoints will fail upstream.
func (p *Provider) Configured() bool {
	return p.baseURL != "" && p.apiKey != ""
}

// SignIn performs the password grant and returns the provider's user plus
// the provider access token (used only for the optional sign-out call, never
// stored).
//
// Invalid credentials come back as ErrUnauthenticated; anything else — bad
// config, connectivity, a 5xx from the provider — is ErrUpstreamAuth.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*ProviderUser, string, error) {
	if !p.Configured() {
		return nil, "", apperror.UpstreamAuth("server not configured: missing identity provider keys", nil)
	}

	body := map[string]string{"email": email, "password": password}
	var ok signInResponse
	status, _, err := p.post(ctx, "/auth/v1/token?grant_type=password", "", body, &ok)
	if err != nil {
		return nil, "", err
	}
	// The provider's own message is not echoed for failed logins — a generic
	// answer avoids leaking whether the account exists.
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, "", apperror.Unauthenticated("invalid credentials")
	}
	if status != http.StatusOK || ok.User == nil || ok.User.ID == "" {
		return nil, "", apperror.UpstreamAuth("login failed", fmt.Errorf("provider returned status %d", status))
	}

	return ok.User, ok.AccessToken, nil
}

// SignUp registers a new account with the provider. The display name is
// passed through as user metadata so it comes back on future sign-ins.
func (p *Provider) SignUp(ctx context.Context, email, password, name string) (*ProviderUser, error) {
	if !p.Configured() {
		return nil, apperror.UpstreamAuth("server not configured: missing identity provider keys", nil)
	}

	body := map[string]any{"email": email, "password": password}
	if name != "" {
		body["data"] = map[string]string{"full_name": name}
	}

	var ok ProviderUser
	status, perr, err := p.post(ctx, "/auth/v1/signup", "", body, &ok)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnprocessableEntity || status == http.StatusBadRequest {
		return nil, apperror.ValidationFailed("email", "signup failed: "+perr.message())
	}
	if status == http.StatusConflict {
		return nil, apperror.Conflict("an account with this email already exists")
	}
	if status != http.StatusOK || ok.ID == "" {
		return nil, apperror.UpstreamAuth("signup failed", fmt.Errorf("provider returned status %d", status))
	}

	return &ok, nil
}

// UserFromToken resolves a provider access token to the user it belongs to.
// Used by the OAuth callback and by clients that completed the OAuth flow in
// the browser.
func (p *Provider) UserFromToken(ctx context.Context, accessToken string) (*ProviderUser, error) {
	if !p.Configured() {
		return nil, apperror.UpstreamAuth("server not configured: missing identity provider keys", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, apperror.UpstreamAuth("authentication failed", err)
	}
	p.setHeaders(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.UpstreamAuth("identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperror.Unauthenticated("invalid or expired access token")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.UpstreamAuth("failed to resolve user", fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var user ProviderUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperror.UpstreamAuth("authentication failed", fmt.Errorf("decoding user response: %w", err))
	}
	if user.ID == "" {
		return nil, apperror.UpstreamAuth("authentication failed", fmt.Errorf("provider returned a user with no id"))
	}

	return &user, nil
}

// SignOut revokes the provider session for the given access token.
// Best-effort: local logout proceeds even if this fails.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if !p.Configured() || accessToken == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("auth: building sign-out request: %w", err)
	}
	p.setHeaders(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth: provider sign-out: %w", err)
	}
	resp.Body.Close()
	return nil
}

// post sends a JSON body and decodes the response exactly once: a success
// payload into out, an error payload into the returned providerError.
// Client-error statuses (4xx the caller wants to map) come back with a nil
// error; anything else is folded into ErrUpstreamAuth.
func (p *Provider) post(ctx context.Context, path, accessToken string, body any, out any) (int, *providerError, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, apperror.UpstreamAuth("authentication failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, apperror.UpstreamAuth("authentication failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	p.setHeaders(req, accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, apperror.UpstreamAuth("identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, nil, apperror.UpstreamAuth("authentication failed", fmt.Errorf("decoding provider response: %w", err))
		}
		return http.StatusOK, nil, nil
	}

	// A body that doesn't parse still yields a usable generic message.
	perr := &providerError{}
	_ = json.NewDecoder(resp.Body).Decode(perr)

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized,
		http.StatusUnprocessableEntity, http.StatusConflict:
		return resp.StatusCode, perr, nil
	}
	return resp.StatusCode, perr, apperror.UpstreamAuth(perr.message(), fmt.Errorf("provider returned status %d", resp.StatusCode))
}

func (p *Provider) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", p.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}
