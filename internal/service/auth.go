package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// AuthService bridges the external identity provider and the local user
// table. It authenticates through the provider, provisions a local user row
// for the provider identity on first sight, and issues session tokens whose
// subject is the LOCAL user ID.
type AuthService struct {
	users    repository.UserRepository
	provider *auth.Provider
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, provider *auth.Provider, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, provider: provider, tokens: tokens, logger: logger}
}

// AuthResult is a successful authentication: the local user plus the signed
// session token to set as a cookie.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginWithPassword authenticates email/password against the identity
// provider, resolves the local user, and issues a session token. The
// provider access token is used once to revoke the provider-side session —
// the session cookie is the only credential the client keeps.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	pu, accessToken, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// The provider session isn't needed once we have the identity; revoking
	// it is best-effort.
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.logger.Warn("provider sign-out failed", slog.String("error", err.Error()))
	}

	return s.establishSession(ctx, pu)
}

// Signup registers a new account with the identity provider and, when the
// provider confirms the account immediately, establishes a session. Some
// provider configurations require email confirmation first; in that case the
// user is still provisioned locally but no token is issued and
// AuthResult.Token is empty.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if len(password) < 6 {
		return nil, apperror.ValidationFailed("password", "password must be at least 6 characters")
	}

	pu, err := s.provider.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, pu)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("authID", user.AuthID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// LoginWithProviderToken exchanges a provider access token (obtained by the
// client through the OAuth flow) for a local session. This backs both the
// server-side OAuth callback and the browser-completed flow.
func (s *AuthService) LoginWithProviderToken(ctx context.Context, accessToken string) (*AuthResult, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, apperror.ValidationFailed("access_token", "access_token is required")
	}

	pu, err := s.provider.UserFromToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	return s.establishSession(ctx, pu)
}

// GetUserByID loads the local user behind a session, for /auth/status and
// profile pages.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *AuthService) establishSession(ctx context.Context, pu *auth.ProviderUser) (*AuthResult, error) {
	user, err := s.resolveUser(ctx, pu)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	s.logger.Info("session established",
		slog.String("userID", user.ID),
		slog.String("authID", user.AuthID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// resolveUser maps a provider identity to a local user row, creating one on
// first sight. Concurrent first logins both try the insert; the UNIQUE
// constraint on auth_id makes the loser's insert a conflict, after which the
// winner's row is re-fetched. Provisioning is therefore idempotent.
func (s *AuthService) resolveUser(ctx context.Context, pu *auth.ProviderUser) (*model.User, error) {
	user, err := s.users.GetUserByAuthID(ctx, pu.ID)
	if err == nil {
		s.syncProfile(ctx, user, pu)
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("resolving user for auth id %s: %w", pu.ID, err)
	}

	user = &model.User{
		AuthID:         pu.ID,
		Email:          pu.Email,
		Name:           pu.DisplayName(),
		GitHubUsername: pu.Metadata.UserName,
	}
	err = s.users.CreateUser(ctx, user)
	if err == nil {
		s.logger.Info("user provisioned",
			slog.String("userID", user.ID),
			slog.String("authID", pu.ID),
		)
		return user, nil
	}
	if errors.Is(err, apperror.ErrConflict) {
		// Lost the race to another request provisioning the same identity.
		return s.users.GetUserByAuthID(ctx, pu.ID)
	}

	return nil, fmt.Errorf("provisioning user for auth id %s: %w", pu.ID, err)
}

// syncProfile refreshes provider-supplied fields on an existing user.
// Failures are logged, not fatal — stale profile data never blocks a login.
func (s *AuthService) syncProfile(ctx context.Context, user *model.User, pu *auth.ProviderUser) {
	changed := false
	if pu.Email != "" && pu.Email != user.Email {
		user.Email = pu.Email
		changed = true
	}
	if name := pu.DisplayName(); name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if pu.Metadata.UserName != "" && pu.Metadata.UserName != user.GitHubUsername {
		user.GitHubUsername = pu.Metadata.UserName
		changed = true
	}
	if !changed {
		return
	}

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		s.logger.Warn("profile sync failed",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
	}
}
