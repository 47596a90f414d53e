package seo

import (
	"strings"
	"unicode/utf8"
)

// Result is the listing content produced for one product on one
// marketplace. Fields outside the marketplace's set stay empty.
type Result struct {
	Marketplace Marketplace `json:"marketplace"`

	ProductName string   `json:"productName"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`

	// Amazon.
	BulletPoints []string `json:"bulletPoints,omitempty"`
	SearchTerms  string   `json:"searchTerms,omitempty"`

	// Shopify.
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	ImageAltText    string `json:"imageAltText,omitempty"`

	PriceSuggestion string `json:"priceSuggestion,omitempty"`
	TargetAudience  string `json:"targetAudience,omitempty"`

	Insights *MarketInsights `json:"insights,omitempty"`

	// Grounded reports whether live market search informed the result.
	Grounded   bool     `json:"grounded"`
	SourceURLs []string `json:"sourceUrls,omitempty"`
}

// MarketInsights summarizes competitor research for a product.
type MarketInsights struct {
	PriceRange      string   `json:"priceRange"`
	Demand          string   `json:"demand"`
	Competition     string   `json:"competition"`
	TrendingStyles  []string `json:"trendingStyles,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Validate repairs a result in place so it satisfies the marketplace
// limits. Oversized values are truncated rather than rejected; the only
// hard failure is a missing title. Character limits count runes, not
// bytes, so listings in any configured language truncate cleanly; the
// search-terms field is the one byte-capped limit and trims back to a
// rune boundary.
func (r *Result) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}

	limits := LimitsFor(r.Marketplace)

	if limits.TitleMax > 0 {
		r.Title = truncate(r.Title, limits.TitleMax)
	}
	if limits.TagMax > 0 && len(r.Keywords) > limits.TagMax {
		r.Keywords = r.Keywords[:limits.TagMax]
	}
	if limits.TagLenMax > 0 {
		for i, kw := range r.Keywords {
			r.Keywords[i] = truncateRunes(kw, limits.TagLenMax)
		}
	}
	if limits.BulletMax > 0 && len(r.BulletPoints) > limits.BulletMax {
		r.BulletPoints = r.BulletPoints[:limits.BulletMax]
	}
	if limits.SearchTermsMax > 0 {
		r.SearchTerms = truncateBytes(r.SearchTerms, limits.SearchTermsMax)
	}
	if limits.MetaTitleMax > 0 {
		r.MetaTitle = truncate(r.MetaTitle, limits.MetaTitleMax)
	}
	if limits.MetaDescMax > 0 {
		r.MetaDescription = truncate(r.MetaDescription, limits.MetaDescMax)
	}
	return nil
}

// truncate cuts a string to max characters, replacing the tail with an
// ellipsis when there is room for one.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return truncateRunes(s, max)
	}
	return truncateRunes(s, max-3) + "..."
}

// truncateRunes cuts a string to at most max characters.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// truncateBytes cuts a string to at most max bytes without splitting a
// rune.
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
