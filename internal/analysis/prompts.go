package analysis

import (
	"fmt"
	"strings"

	"shoplens/internal/seo"
)

func identifyPrompt() string {
	return strings.TrimSpace(`
Look at this product photo and identify what is being sold.
Respond with JSON only:
{
  "productName": "short product name",
  "category": "product category",
  "materials": "visible materials",
  "style": "visual style or aesthetic"
}`)
}

func identifyTextPrompt(description string) string {
	return fmt.Sprintf(strings.TrimSpace(`
A seller describes their product as follows:

%s

Identify what is being sold. Respond with JSON only:
{
  "productName": "short product name",
  "category": "product category",
  "materials": "likely materials",
  "style": "style or aesthetic"
}`), description)
}

func searchSite(m seo.Marketplace) string {
	switch m {
	case seo.MarketplaceAmazon:
		return "site:amazon.com"
	case seo.MarketplaceShopify:
		return "site:myshopify.com OR shopify store"
	default:
		return "site:etsy.com"
	}
}

func marketSearchPrompt(product identification, m seo.Marketplace) string {
	return fmt.Sprintf(strings.TrimSpace(`
Search for current %s listings: %s %s

Find 5-10 comparable listings for a "%s" (%s). Report what you find as JSON only:
{
  "priceRange": "observed price range, e.g. $18-$45",
  "commonKeywords": ["keywords successful listings share"],
  "titlePatterns": ["title structures that recur"],
  "demand": "low|medium|high",
  "competition": "low|medium|high",
  "trendingStyles": ["styles trending in this niche"]
}`), m, searchSite(m), product.ProductName, product.ProductName, product.Category)
}

func listingRules(m seo.Marketplace) string {
	switch m {
	case seo.MarketplaceAmazon:
		return strings.TrimSpace(`
Write for Amazon:
- "title": up to 200 characters, lead with brand-style keywords and the product type
- "bulletPoints": exactly 5 benefit-led bullet points
- "description": persuasive paragraph copy
- "searchTerms": backend search terms, no repeats of title words, under 249 bytes
- "priceSuggestion" and "targetAudience"`)
	case seo.MarketplaceShopify:
		return strings.TrimSpace(`
Write for a Shopify storefront:
- "title": up to 70 characters
- "metaTitle": up to 60 characters for the search snippet
- "metaDescription": up to 160 characters
- "description": rich HTML with <p> and <ul> markup
- "imageAltText": descriptive alt text for the product photo
- "keywords": SEO keywords for the page
- "priceSuggestion" and "targetAudience"`)
	default:
		return strings.TrimSpace(`
Write for Etsy:
- "title": up to 140 characters, front-load the strongest search phrases
- "keywords": exactly 13 tags, each up to 20 characters, multi-word long-tail phrases
- "description": warm, story-driven copy with the keywords woven in naturally
- "priceSuggestion" and "targetAudience"`)
	}
}

func listingPrompt(product identification, research string, m seo.Marketplace, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s listing copywriter. Create listing content for this product:\n\n", m)
	fmt.Fprintf(&b, "Product: %s\nCategory: %s\nMaterials: %s\nStyle: %s\n\n",
		product.ProductName, product.Category, product.Materials, product.Style)
	if research != "" {
		fmt.Fprintf(&b, "Live competitor research:\n%s\n\n", research)
	}
	b.WriteString(listingRules(m))
	if language != "" && language != "en" {
		fmt.Fprintf(&b, "\n\nWrite all customer-facing text in the language with BCP 47 tag %q.", language)
	}
	b.WriteString("\n\nRespond with a single JSON object containing the fields named above plus \"productName\".")
	return b.String()
}

func insightsPrompt(product identification, research string) string {
	return fmt.Sprintf(strings.TrimSpace(`
Summarize the market position for "%s" based on this research:

%s

Respond with JSON only:
{
  "priceRange": "realistic selling range",
  "demand": "low|medium|high",
  "competition": "low|medium|high",
  "trendingStyles": ["relevant trends"],
  "recommendations": ["2-4 concrete actions for the seller"]
}`), product.ProductName, research)
}
