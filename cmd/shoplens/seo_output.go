package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"shoplens/internal/seo"
)

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func printSEOResult(out io.Writer, result *seo.Result) {
	fmt.Fprintf(out, "Marketplace: %s\n", result.Marketplace)
	if result.ProductName != "" {
		fmt.Fprintf(out, "Product:     %s\n", result.ProductName)
	}
	fmt.Fprintf(out, "\nTitle:\n  %s\n", result.Title)

	if len(result.Keywords) > 0 {
		fmt.Fprintf(out, "\nTags (%d):\n  %s\n", len(result.Keywords), strings.Join(result.Keywords, ", "))
	}
	if len(result.BulletPoints) > 0 {
		fmt.Fprintln(out, "\nBullet points:")
		for _, bullet := range result.BulletPoints {
			fmt.Fprintf(out, "  - %s\n", bullet)
		}
	}
	if result.SearchTerms != "" {
		fmt.Fprintf(out, "\nBackend search terms:\n  %s\n", result.SearchTerms)
	}
	if result.MetaTitle != "" {
		fmt.Fprintf(out, "\nMeta title:       %s\n", result.MetaTitle)
	}
	if result.MetaDescription != "" {
		fmt.Fprintf(out, "Meta description: %s\n", result.MetaDescription)
	}
	if result.Description != "" {
		fmt.Fprintf(out, "\nDescription:\n%s\n", indent(result.Description, "  "))
	}
	if result.PriceSuggestion != "" {
		fmt.Fprintf(out, "\nSuggested price:  %s\n", result.PriceSuggestion)
	}
	if result.TargetAudience != "" {
		fmt.Fprintf(out, "Target audience:  %s\n", result.TargetAudience)
	}

	if insights := result.Insights; insights != nil {
		fmt.Fprintln(out, "\nMarket insights:")
		fmt.Fprintf(out, "  Price range: %s\n", insights.PriceRange)
		fmt.Fprintf(out, "  Demand:      %s\n", insights.Demand)
		fmt.Fprintf(out, "  Competition: %s\n", insights.Competition)
		for _, rec := range insights.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}

	if result.Grounded {
		fmt.Fprintf(out, "\nGrounded in %d live listings\n", len(result.SourceURLs))
		for _, url := range result.SourceURLs {
			fmt.Fprintf(out, "  %s\n", url)
		}
	} else {
		fmt.Fprintln(out, "\nGenerated without live market research")
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
