// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"shoplens/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Gemini.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Account.Email = "seller@example.com"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithQuotas overrides the library quotas on the test config.
func WithQuotas(maxProjects, maxAssets, historyLimit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Library.MaxProjects = maxProjects
		cfg.Library.MaxAssets = maxAssets
		cfg.Library.HistoryLimit = historyLimit
	}
}

// WithAdminEmails marks accounts as unlimited on the test config.
func WithAdminEmails(emails ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Account.AdminEmails = emails
	}
}
