package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"shoplens/internal/analysis"
	"shoplens/internal/autosave"
	"shoplens/internal/config"
	"shoplens/internal/credits"
	"shoplens/internal/gemini"
	"shoplens/internal/imaging"
	"shoplens/internal/library"
	"shoplens/internal/logging"
	"shoplens/internal/seo"
	"shoplens/internal/studio"
)

type commandContext struct {
	configFlag      *string
	marketplaceFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, marketplaceFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		marketplaceFlag: marketplaceFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// marketplace resolves the target marketplace from the flag, falling
// back to the configured default.
func (c *commandContext) marketplace() (seo.Marketplace, error) {
	if c.marketplaceFlag != nil && strings.TrimSpace(*c.marketplaceFlag) != "" {
		return seo.ParseMarketplace(*c.marketplaceFlag)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return seo.ParseMarketplace(cfg.Listing.Marketplace)
}

// withStore opens the library for the duration of one command.
func (c *commandContext) withStore(fn func(*library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := library.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// withLedger opens the library and wraps it in the credit ledger.
func (c *commandContext) withLedger(fn func(*library.Store, *credits.Ledger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return c.withStore(func(store *library.Store) error {
		return fn(store, credits.NewLedger(store, cfg.Account.AdminEmails))
	})
}

// withWorkspace builds a fully wired workspace for generation
// commands and flushes pending saves on the way out.
func (c *commandContext) withWorkspace(ctx context.Context, fn func(*studio.Workspace) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	marketplace, err := c.marketplace()
	if err != nil {
		return err
	}

	client, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	logger := c.ensureLogger()

	return c.withStore(func(store *library.Store) error {
		workspace := studio.NewWorkspace(studio.Options{
			Ledger:      credits.NewLedger(store, cfg.Account.AdminEmails),
			Store:       store,
			Generator:   imaging.NewGenerator(client, client, logger),
			Pipeline:    analysis.New(client, marketplace, cfg.Listing.Language, cfg.Gemini.Grounding, logger),
			Email:       cfg.Account.Email,
			Marketplace: marketplace,
			SaveDelay:   autosave.DefaultDelay,
			Logger:      logger,
		})
		defer func() { _ = workspace.Close() }()

		if err := fn(workspace); err != nil {
			return err
		}
		return workspace.Flush()
	})
}

// accountEmail returns the configured account email.
func (c *commandContext) accountEmail() string {
	cfg, err := c.ensureConfig()
	if err != nil {
		return ""
	}
	return cfg.Account.Email
}
