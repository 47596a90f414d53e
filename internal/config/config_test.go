package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoplens/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("VERTEX_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
	if cfg.Listing.Marketplace != "etsy" {
		t.Fatalf("expected default marketplace etsy, got %q", cfg.Listing.Marketplace)
	}
	if cfg.Library.MaxProjects != 20 || cfg.Library.MaxAssets != 200 {
		t.Fatalf("unexpected quota defaults: %+v", cfg.Library)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Fatalf("expected env fallback API key, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.ImageAPIKey != "test-key" {
		t.Fatalf("expected image key to fall back to text key, got %q", cfg.Gemini.ImageAPIKey)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gemini]\napi_key = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnknownMarketplace(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[listing]\nmarketplace = \"ebay\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown marketplace")
	}
}

func TestNormalizeCanonicalizesLanguage(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[listing]\nlanguage = \"en-us\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listing.Language != "en-US" {
		t.Fatalf("expected canonical en-US, got %q", cfg.Listing.Language)
	}
}

func TestNormalizeDeduplicatesAdminEmails(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[account]\nadmin_emails = [\"Admin@Example.com\", \"admin@example.com\", \" \"]\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Account.AdminEmails) != 1 || cfg.Account.AdminEmails[0] != "admin@example.com" {
		t.Fatalf("unexpected admin emails: %v", cfg.Account.AdminEmails)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when sample config already exists")
	}
}
