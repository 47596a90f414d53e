package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shoplens/internal/analysis"
	"shoplens/internal/gemini"
	"shoplens/internal/seo"
)

// scriptedGen returns canned responses keyed by prompt content.
type scriptedGen struct {
	calls     []gemini.TextRequest
	searchErr error
	grounded  bool
}

func (g *scriptedGen) GenerateText(ctx context.Context, req gemini.TextRequest) (gemini.TextResult, error) {
	g.calls = append(g.calls, req)

	switch {
	case strings.Contains(req.Prompt, "identify") || strings.Contains(req.Prompt, "Identify"):
		return gemini.TextResult{Text: `{"productName": "Ceramic Mug", "category": "drinkware", "materials": "stoneware", "style": "rustic"}`}, nil
	case req.Grounded:
		if g.searchErr != nil {
			return gemini.TextResult{}, g.searchErr
		}
		result := gemini.TextResult{
			Text: `{"priceRange": "$18-$45", "commonKeywords": ["handmade mug"], "demand": "high", "competition": "medium"}`,
		}
		if g.grounded {
			result.Grounded = true
			result.Sources = []gemini.Source{{URI: "https://www.etsy.com/listing/1", Title: "Handmade Mug"}}
		}
		return result, nil
	case strings.Contains(req.Prompt, "market position"):
		return gemini.TextResult{Text: `{"priceRange": "$20-$40", "demand": "high", "competition": "medium", "recommendations": ["bundle with coasters"]}`}, nil
	default:
		return gemini.TextResult{Text: "```json\n{\"title\": \"Rustic Handmade Ceramic Mug\", \"description\": \"A mug.\", \"keywords\": [\"handmade mug\", \"ceramic cup\"]}\n```"}, nil
	}
}

func TestAnalyzeImageGroundedPath(t *testing.T) {
	gen := &scriptedGen{grounded: true}
	pipeline := analysis.New(gen, seo.MarketplaceEtsy, "en", true, nil)

	result, err := pipeline.AnalyzeImage(context.Background(), gemini.InlineImage{Data: []byte{1}, MIMEType: "image/png"})
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if !result.Grounded {
		t.Fatal("expected grounded result when search succeeds")
	}
	if len(result.SourceURLs) != 1 {
		t.Fatalf("sources = %v", result.SourceURLs)
	}
	if result.Title != "Rustic Handmade Ceramic Mug" {
		t.Fatalf("title = %q", result.Title)
	}
	if result.ProductName != "Ceramic Mug" {
		t.Fatalf("product name = %q", result.ProductName)
	}
	if result.Insights == nil || result.Insights.Demand != "high" {
		t.Fatalf("insights = %+v", result.Insights)
	}
	if len(gen.calls) != 4 {
		t.Fatalf("calls = %d, want 4 pipeline steps", len(gen.calls))
	}
}

func TestAnalyzeDegradesWhenSearchFails(t *testing.T) {
	gen := &scriptedGen{searchErr: errors.New("quota exceeded")}
	pipeline := analysis.New(gen, seo.MarketplaceEtsy, "en", true, nil)

	result, err := pipeline.AnalyzeImage(context.Background(), gemini.InlineImage{Data: []byte{1}})
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if result.Grounded {
		t.Fatal("result must not claim grounding after a failed search")
	}
	if result.Insights == nil || result.Insights.Demand != "medium" {
		t.Fatalf("expected neutral fallback insights, got %+v", result.Insights)
	}
}

func TestAnalyzeUngroundedWhenSearchReturnsNoSources(t *testing.T) {
	gen := &scriptedGen{grounded: false}
	pipeline := analysis.New(gen, seo.MarketplaceEtsy, "en", true, nil)

	result, err := pipeline.AnalyzeImage(context.Background(), gemini.InlineImage{Data: []byte{1}})
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if result.Grounded {
		t.Fatal("search without citations must not count as grounded")
	}
}

func TestAnalyzeTextRejectsShortDescription(t *testing.T) {
	pipeline := analysis.New(&scriptedGen{}, seo.MarketplaceEtsy, "en", false, nil)

	if _, err := pipeline.AnalyzeText(context.Background(), "mug"); !errors.Is(err, analysis.ErrDescriptionTooShort) {
		t.Fatalf("err = %v, want ErrDescriptionTooShort", err)
	}
}

func TestAnalyzeTextSkipsSearchWhenGroundingDisabled(t *testing.T) {
	gen := &scriptedGen{grounded: true}
	pipeline := analysis.New(gen, seo.MarketplaceEtsy, "en", false, nil)

	result, err := pipeline.AnalyzeText(context.Background(), "a rustic handmade ceramic mug with speckled glaze")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if result.Grounded {
		t.Fatal("grounding disabled, result must be ungrounded")
	}
	for _, call := range gen.calls {
		if call.Grounded {
			t.Fatal("no grounded request should be issued when grounding is disabled")
		}
	}
}
