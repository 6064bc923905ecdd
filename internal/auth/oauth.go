package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuthFlow wraps golang.org/x/oauth2 for the authorization-code flow
// against the identity provider's hosted Google sign-in.
//
// The provider fronts the actual Google OAuth dance: we redirect the browser
// to its authorize endpoint with provider=google, the user approves on
// Google, and the provider redirects back to our callback with a short-lived
// code. We exchange that code server-side for a provider access token, then
// resolve it to a user with Provider.UserFromToken. The client secret never
// leaves the server.
type OAuthFlow struct {
	config *oauth2.Config
}

// NewOAuthFlow creates an OAuthFlow for the given provider base URL and
// client credentials. redirectURL must match the callback URL registered
// with the provider exactly.
func NewOAuthFlow(baseURL, clientID, clientSecret, redirectURL string) *OAuthFlow {
	return &OAuthFlow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  baseURL + "/auth/v1/authorize?provider=google",
				TokenURL: baseURL + "/auth/v1/token",
			},
		},
	}
}

// Configured reports whether the OAuth client credentials are present.
func (f *OAuthFlow) Configured() bool {
	return f.config.ClientID != "" && f.config.ClientSecret != ""
}

// AuthURL returns the URL to redirect the user to for authorization.
//
// The state is a random value stored in a cookie before redirecting; the
// callback verifies the returned state matches, which stops CSRF attacks
// that try to complete an OAuth flow for an attacker's account.
func (f *OAuthFlow) AuthURL(state string) string {
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for the provider access token.
// The token is short-lived and is only used to resolve the user within this
// request.
func (f *OAuthFlow) Exchange(ctx context.Context, code string) (string, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("auth: provider returned an empty access token")
	}
	return token.AccessToken, nil
}
