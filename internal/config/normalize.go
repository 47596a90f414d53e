package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGemini()
	if err := c.normalizeListing(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeAccount()
	c.normalizeCheckout()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.ImageAPIKey = strings.TrimSpace(c.Gemini.ImageAPIKey)
	if c.Gemini.ImageAPIKey == "" {
		if value, ok := os.LookupEnv("VERTEX_API_KEY"); ok {
			c.Gemini.ImageAPIKey = strings.TrimSpace(value)
		}
	}
	if c.Gemini.ImageAPIKey == "" {
		c.Gemini.ImageAPIKey = c.Gemini.APIKey
	}
	c.Gemini.TextModel = strings.TrimSpace(c.Gemini.TextModel)
	if c.Gemini.TextModel == "" {
		c.Gemini.TextModel = defaultTextModel
	}
	c.Gemini.ImageModel = strings.TrimSpace(c.Gemini.ImageModel)
	if c.Gemini.ImageModel == "" {
		c.Gemini.ImageModel = defaultImageModel
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeListing() error {
	c.Listing.Marketplace = strings.ToLower(strings.TrimSpace(c.Listing.Marketplace))
	if c.Listing.Marketplace == "" {
		c.Listing.Marketplace = defaultMarketplace
	}

	c.Listing.Language = strings.TrimSpace(c.Listing.Language)
	if c.Listing.Language == "" {
		c.Listing.Language = defaultLanguage
	}
	tag, err := language.Parse(c.Listing.Language)
	if err != nil {
		return fmt.Errorf("listing.language: unrecognized language tag %q: %w", c.Listing.Language, err)
	}
	c.Listing.Language = tag.String()
	return nil
}

func (c *Config) normalizeLibrary() {
	if c.Library.MaxProjects <= 0 {
		c.Library.MaxProjects = defaultMaxProjects
	}
	if c.Library.MaxAssets <= 0 {
		c.Library.MaxAssets = defaultMaxAssets
	}
	if c.Library.HistoryLimit <= 0 {
		c.Library.HistoryLimit = defaultHistoryLimit
	}
}

func (c *Config) normalizeAccount() {
	c.Account.Email = strings.ToLower(strings.TrimSpace(c.Account.Email))
	admins := make([]string, 0, len(c.Account.AdminEmails))
	seen := make(map[string]struct{}, len(c.Account.AdminEmails))
	for _, email := range c.Account.AdminEmails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		admins = append(admins, normalized)
	}
	c.Account.AdminEmails = admins
}

func (c *Config) normalizeCheckout() {
	c.Checkout.StoreDomain = strings.TrimSpace(c.Checkout.StoreDomain)
	if c.Checkout.StoreDomain == "" {
		c.Checkout.StoreDomain = defaultStoreDomain
	}
	c.Checkout.SuccessURL = strings.TrimSpace(c.Checkout.SuccessURL)
	if c.Checkout.SuccessURL == "" {
		c.Checkout.SuccessURL = defaultSuccessURL
	}
	c.Checkout.CancelURL = strings.TrimSpace(c.Checkout.CancelURL)
	if c.Checkout.CancelURL == "" {
		c.Checkout.CancelURL = defaultCancelURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
