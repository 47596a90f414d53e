package config

import (
	"errors"
	"fmt"
)

var knownMarketplaces = map[string]struct{}{
	"etsy":    {},
	"amazon":  {},
	"shopify": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateListing(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shoplens/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY env var or edit %s (create with 'shoplens config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateListing() error {
	if _, ok := knownMarketplaces[c.Listing.Marketplace]; !ok {
		return fmt.Errorf("listing.marketplace must be one of etsy, amazon, shopify (got %q)", c.Listing.Marketplace)
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.MaxAssets < c.Library.MaxProjects {
		return errors.New("library.max_assets must be at least library.max_projects")
	}
	return nil
}
