package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "JWT_SECRET", "FRONTEND_URL", "AUTH_PROVIDER_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/devhub.db" {
		t.Errorf("DBPath = %q, want data/devhub.db", cfg.DBPath)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("FrontendURL = %q, want http://localhost:3000", cfg.FrontendURL)
	}
	if cfg.Provider.OAuthRedirectURL != "http://localhost:8080/auth/callback" {
		t.Errorf("OAuthRedirectURL = %q, want the default callback", cfg.Provider.OAuthRedirectURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "env-secret-0123456789abcdef")
	t.Setenv("AUTH_PROVIDER_URL", "https://id.example.com")
	t.Setenv("AUTH_PROVIDER_KEY", "anon-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.JWTSecret != "env-secret-0123456789abcdef" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.Provider.BaseURL != "https://id.example.com" {
		t.Errorf("Provider.BaseURL = %q", cfg.Provider.BaseURL)
	}
	// The redirect default follows the chosen port.
	if cfg.Provider.OAuthRedirectURL != "http://localhost:9000/auth/callback" {
		t.Errorf("OAuthRedirectURL = %q, want port 9000 callback", cfg.Provider.OAuthRedirectURL)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() with an unparseable PORT should fail")
	}
}

func TestLoadYAMLOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "env-secret-0123456789abcdef")
	t.Setenv("FRONTEND_URL", "http://env.example.com")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`port: 7777
frontend_url: http://file.example.com
provider:
  base_url: https://file-id.example.com
  api_key: file-key
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want the file's 7777", cfg.Port)
	}
	if cfg.FrontendURL != "http://file.example.com" {
		t.Errorf("FrontendURL = %q, want the file's value", cfg.FrontendURL)
	}
	// Keys absent from the file keep their env values.
	if cfg.JWTSecret != "env-secret-0123456789abcdef" {
		t.Errorf("JWTSecret = %q, want the env value preserved", cfg.JWTSecret)
	}
	if cfg.Provider.APIKey != "file-key" {
		t.Errorf("Provider.APIKey = %q", cfg.Provider.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() with a missing file should fail")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [not an int\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() with malformed YAML should fail")
	}
}
