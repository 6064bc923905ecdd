// Package config loads server configuration from defaults, environment
// variables, and an optional YAML file (in that order — the file wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start. All fields can come
// from the environment; a YAML file (DEVHUB_CONFIG or --config) can override
// them for deployments that prefer files over env vars.
type Config struct {
	Port        int    `yaml:"port"`
	DBPath      string `yaml:"db_path"`
	JWTSecret   string `yaml:"jwt_secret"`
	FrontendURL string `yaml:"frontend_url"`

	Provider ProviderConfig `yaml:"provider"`
}

// ProviderConfig points at the external identity provider.
type ProviderConfig struct {
	// BaseURL is the provider's API root, e.g. "https://xyz.supabase.co".
	BaseURL string `yaml:"base_url"`
	// APIKey is the publishable (anon) key sent with every provider call.
	APIKey string `yaml:"api_key"`
	// OAuthRedirectURL is where the provider sends the browser back after an
	// OAuth authorization, e.g. "http://localhost:8080/auth/callback".
	OAuthRedirectURL string `yaml:"oauth_redirect_url"`
	// OAuthClientID identifies this app to the provider's token endpoint.
	OAuthClientID string `yaml:"oauth_client_id"`
	// OAuthClientSecret is used for the server-side code exchange.
	OAuthClientSecret string `yaml:"oauth_client_secret"`
}

// Load builds a Config from env vars, then applies the YAML file at path if
// path is non-empty.
func Load(path string) (*Config, error) {
	port := 8080
	if s := os.Getenv("PORT"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", s, err)
		}
		port = p
	}

	cfg := &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "data/devhub.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Provider: ProviderConfig{
			BaseURL:           os.Getenv("AUTH_PROVIDER_URL"),
			APIKey:            os.Getenv("AUTH_PROVIDER_KEY"),
			OAuthRedirectURL:  getEnv("OAUTH_REDIRECT_URL", fmt.Sprintf("http://localhost:%d/auth/callback", port)),
			OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		},
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: opening %s: %w", path, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: decoding %s: %w", path, err)
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
