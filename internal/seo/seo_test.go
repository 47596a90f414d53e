package seo_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"shoplens/internal/seo"
)

func TestValidateTruncatesEtsyTitle(t *testing.T) {
	result := seo.Result{
		Marketplace: seo.MarketplaceEtsy,
		Title:       strings.Repeat("a", 150),
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.Title) != 140 {
		t.Fatalf("title length = %d, want 140", len(result.Title))
	}
	if !strings.HasSuffix(result.Title, "...") {
		t.Fatal("expected truncated title to end with ellipsis")
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	// 71 two-byte runes: 142 bytes but well inside the 140-char limit.
	result := seo.Result{
		Marketplace: seo.MarketplaceEtsy,
		Title:       strings.Repeat("ü", 71),
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Title != strings.Repeat("ü", 71) {
		t.Fatal("title within the character limit must not be touched")
	}

	result.Title = strings.Repeat("ü", 150)
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !utf8.ValidString(result.Title) {
		t.Fatalf("truncated title is not valid UTF-8: %q", result.Title)
	}
	if got := utf8.RuneCountInString(result.Title); got != 140 {
		t.Fatalf("title runes = %d, want 140", got)
	}
	if !strings.HasSuffix(result.Title, "...") {
		t.Fatal("expected truncated title to end with ellipsis")
	}
}

func TestValidateTruncatesMultibyteTagOnRuneBoundary(t *testing.T) {
	result := seo.Result{
		Marketplace: seo.MarketplaceEtsy,
		Title:       "Tasse en céramique",
		Keywords:    []string{strings.Repeat("é", 25)},
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tag := result.Keywords[0]
	if !utf8.ValidString(tag) {
		t.Fatalf("truncated tag is not valid UTF-8: %q", tag)
	}
	if got := utf8.RuneCountInString(tag); got != 20 {
		t.Fatalf("tag runes = %d, want 20", got)
	}
}

func TestValidateSearchTermsByteCapKeepsRunesWhole(t *testing.T) {
	result := seo.Result{
		Marketplace: seo.MarketplaceAmazon,
		Title:       "Mug",
		SearchTerms: strings.Repeat("ü", 130),
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.SearchTerms) > 249 {
		t.Fatalf("search terms bytes = %d, want at most 249", len(result.SearchTerms))
	}
	if !utf8.ValidString(result.SearchTerms) {
		t.Fatalf("search terms cut mid-rune: %q", result.SearchTerms)
	}
}

func TestValidateCapsEtsyKeywords(t *testing.T) {
	keywords := make([]string, 20)
	for i := range keywords {
		keywords[i] = "tag"
	}
	result := seo.Result{
		Marketplace: seo.MarketplaceEtsy,
		Title:       "Handmade ceramic mug",
		Keywords:    keywords,
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.Keywords) != 13 {
		t.Fatalf("keywords = %d, want 13", len(result.Keywords))
	}
}

func TestValidateAmazonLimits(t *testing.T) {
	result := seo.Result{
		Marketplace:  seo.MarketplaceAmazon,
		Title:        "Mug",
		BulletPoints: []string{"a", "b", "c", "d", "e", "f", "g"},
		SearchTerms:  strings.Repeat("x", 300),
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.BulletPoints) != 5 {
		t.Fatalf("bullet points = %d, want 5", len(result.BulletPoints))
	}
	if len(result.SearchTerms) != 249 {
		t.Fatalf("search terms bytes = %d, want 249", len(result.SearchTerms))
	}
}

func TestValidateShopifyMetaLimits(t *testing.T) {
	result := seo.Result{
		Marketplace:     seo.MarketplaceShopify,
		Title:           "Mug",
		MetaTitle:       strings.Repeat("m", 80),
		MetaDescription: strings.Repeat("d", 200),
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.MetaTitle) != 60 {
		t.Fatalf("meta title = %d, want 60", len(result.MetaTitle))
	}
	if len(result.MetaDescription) != 160 {
		t.Fatalf("meta description = %d, want 160", len(result.MetaDescription))
	}
}

func TestValidateRejectsMissingTitle(t *testing.T) {
	result := seo.Result{Marketplace: seo.MarketplaceEtsy}
	if err := result.Validate(); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestParseMarketplace(t *testing.T) {
	m, err := seo.ParseMarketplace("  Etsy ")
	if err != nil {
		t.Fatalf("ParseMarketplace: %v", err)
	}
	if m != seo.MarketplaceEtsy {
		t.Fatalf("marketplace = %q, want etsy", m)
	}
	if _, err := seo.ParseMarketplace("ebay"); err == nil {
		t.Fatal("expected error for unsupported marketplace")
	}
}

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here is the listing:\n```json\n{\"title\": \"Ceramic Mug\"}\n```\nDone."
	var out struct {
		Title string `json:"title"`
	}
	if err := seo.ExtractJSON(text, &out); err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out.Title != "Ceramic Mug" {
		t.Fatalf("title = %q", out.Title)
	}
}

func TestExtractJSONTrailingComma(t *testing.T) {
	text := `{"keywords": ["mug", "ceramic",], "title": "Mug",}`
	var out struct {
		Title    string   `json:"title"`
		Keywords []string `json:"keywords"`
	}
	if err := seo.ExtractJSON(text, &out); err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if len(out.Keywords) != 2 || out.Title != "Mug" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestExtractJSONControlCharsInString(t *testing.T) {
	text := "{\"title\": \"Line\none\"}"
	var out struct {
		Title string `json:"title"`
	}
	if err := seo.ExtractJSON(text, &out); err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out.Title != "Line one" {
		t.Fatalf("title = %q", out.Title)
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	var out map[string]any
	if err := seo.ExtractJSON("sorry, I cannot help with that", &out); err == nil {
		t.Fatal("expected error when no JSON present")
	}
}

func TestExtractJSONIgnoresSurroundingProse(t *testing.T) {
	text := `The result { nested } appears below.`
	var out map[string]any
	if err := seo.ExtractJSON(text, &out); err == nil {
		t.Fatal("expected decode failure for non-JSON braces")
	}
}
