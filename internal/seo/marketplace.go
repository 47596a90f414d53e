package seo

import (
	"fmt"
	"strings"
)

// Marketplace identifies a listing target platform.
type Marketplace string

const (
	MarketplaceEtsy    Marketplace = "etsy"
	MarketplaceAmazon  Marketplace = "amazon"
	MarketplaceShopify Marketplace = "shopify"
)

// ParseMarketplace normalizes and validates a marketplace name.
func ParseMarketplace(value string) (Marketplace, error) {
	switch Marketplace(strings.ToLower(strings.TrimSpace(value))) {
	case MarketplaceEtsy:
		return MarketplaceEtsy, nil
	case MarketplaceAmazon:
		return MarketplaceAmazon, nil
	case MarketplaceShopify:
		return MarketplaceShopify, nil
	default:
		return "", fmt.Errorf("marketplace: unsupported value %q", value)
	}
}

// Limits holds the hard field limits a marketplace enforces.
type Limits struct {
	TitleMax       int
	TagMax         int // max tags, Etsy only
	TagLenMax      int // max characters per tag
	BulletMax      int // Amazon bullet point count
	SearchTermsMax int // Amazon backend search terms, bytes
	MetaTitleMax   int
	MetaDescMax    int
}

// LimitsFor returns the limits for a marketplace.
func LimitsFor(m Marketplace) Limits {
	switch m {
	case MarketplaceAmazon:
		return Limits{TitleMax: 200, BulletMax: 5, SearchTermsMax: 249}
	case MarketplaceShopify:
		return Limits{TitleMax: 70, MetaTitleMax: 60, MetaDescMax: 160}
	default:
		return Limits{TitleMax: 140, TagMax: 13, TagLenMax: 20}
	}
}
