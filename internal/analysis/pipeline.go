package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"shoplens/internal/gemini"
	"shoplens/internal/logging"
	"shoplens/internal/seo"
)

// MinDescriptionLen is the shortest product description the text-only
// path accepts. Anything shorter cannot identify a product.
const MinDescriptionLen = 10

// ErrDescriptionTooShort indicates a text-only analysis request with
// too little material to work from.
var ErrDescriptionTooShort = errors.New("analysis: product description too short")

// Pipeline runs the listing analysis steps against a text generator.
type Pipeline struct {
	gen         gemini.TextGenerator
	marketplace seo.Marketplace
	language    string
	grounding   bool
	logger      *slog.Logger
}

// New builds a pipeline for one marketplace.
func New(gen gemini.TextGenerator, marketplace seo.Marketplace, language string, grounding bool, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		gen:         gen,
		marketplace: marketplace,
		language:    language,
		grounding:   grounding,
		logger:      logging.WithComponent(logger, "analysis"),
	}
}

type identification struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Materials   string `json:"materials"`
	Style       string `json:"style"`
}

// AnalyzeImage runs the full pipeline from a product photo.
func (p *Pipeline) AnalyzeImage(ctx context.Context, img gemini.InlineImage) (*seo.Result, error) {
	product, err := p.identify(ctx, identifyPrompt(), &img)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, product)
}

// AnalyzeText runs the pipeline from a written product description.
func (p *Pipeline) AnalyzeText(ctx context.Context, description string) (*seo.Result, error) {
	description = strings.TrimSpace(description)
	if len(description) < MinDescriptionLen {
		return nil, ErrDescriptionTooShort
	}
	product, err := p.identify(ctx, identifyTextPrompt(description), nil)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, product)
}

func (p *Pipeline) identify(ctx context.Context, prompt string, img *gemini.InlineImage) (identification, error) {
	resp, err := p.gen.GenerateText(ctx, gemini.TextRequest{
		Prompt:      prompt,
		Image:       img,
		Temperature: 0.2,
	})
	if err != nil {
		return identification{}, fmt.Errorf("identify product: %w", err)
	}

	var product identification
	if err := seo.ExtractJSON(resp.Text, &product); err != nil {
		return identification{}, fmt.Errorf("identify product: %w", err)
	}
	if strings.TrimSpace(product.ProductName) == "" {
		return identification{}, errors.New("identify product: model returned no product name")
	}
	p.logger.Debug("product identified",
		slog.String("product", product.ProductName),
		slog.String("category", product.Category))
	return product, nil
}

func (p *Pipeline) run(ctx context.Context, product identification) (*seo.Result, error) {
	research, sources := p.research(ctx, product)

	result, err := p.generateListing(ctx, product, research)
	if err != nil {
		return nil, err
	}
	result.Marketplace = p.marketplace
	result.Grounded = research != ""
	result.SourceURLs = sources
	if result.ProductName == "" {
		result.ProductName = product.ProductName
	}

	result.Insights = p.insights(ctx, product, research)

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// research performs the grounded market search. Any failure here is
// logged and swallowed; the listing is still generated, just without
// competitor context.
func (p *Pipeline) research(ctx context.Context, product identification) (string, []string) {
	if !p.grounding {
		return "", nil
	}

	resp, err := p.gen.GenerateText(ctx, gemini.TextRequest{
		Prompt:      marketSearchPrompt(product, p.marketplace),
		Grounded:    true,
		Temperature: 0.3,
	})
	if err != nil {
		p.logger.Warn("market research unavailable, continuing ungrounded", logging.Error(err))
		return "", nil
	}
	if !resp.Grounded || strings.TrimSpace(resp.Text) == "" {
		p.logger.Warn("market research returned no grounded results")
		return "", nil
	}

	urls := make([]string, 0, len(resp.Sources))
	for _, src := range resp.Sources {
		urls = append(urls, src.URI)
	}
	return resp.Text, urls
}

func (p *Pipeline) generateListing(ctx context.Context, product identification, research string) (*seo.Result, error) {
	resp, err := p.gen.GenerateText(ctx, gemini.TextRequest{
		Prompt:      listingPrompt(product, research, p.marketplace, p.language),
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, fmt.Errorf("generate listing: %w", err)
	}

	var result seo.Result
	if err := seo.ExtractJSON(resp.Text, &result); err != nil {
		return nil, fmt.Errorf("generate listing: %w", err)
	}
	return &result, nil
}

// insights summarizes the market research. Failures fall back to
// neutral defaults so a broken summary never sinks the listing.
func (p *Pipeline) insights(ctx context.Context, product identification, research string) *seo.MarketInsights {
	fallback := &seo.MarketInsights{
		PriceRange:  "unknown",
		Demand:      "medium",
		Competition: "medium",
	}
	if research == "" {
		return fallback
	}

	resp, err := p.gen.GenerateText(ctx, gemini.TextRequest{
		Prompt:      insightsPrompt(product, research),
		Temperature: 0.3,
	})
	if err != nil {
		p.logger.Warn("market insights unavailable", logging.Error(err))
		return fallback
	}

	var insights seo.MarketInsights
	if err := seo.ExtractJSON(resp.Text, &insights); err != nil {
		p.logger.Warn("market insights unparseable", logging.Error(err))
		return fallback
	}
	if insights.PriceRange == "" {
		insights.PriceRange = fallback.PriceRange
	}
	if insights.Demand == "" {
		insights.Demand = fallback.Demand
	}
	if insights.Competition == "" {
		insights.Competition = fallback.Competition
	}
	return &insights
}
