package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"shoplens/internal/config"
)

// InlineImage is an image payload passed to or returned from a model.
type InlineImage struct {
	Data     []byte
	MIMEType string
}

// TextRequest asks for a text completion, optionally conditioned on an
// image and optionally grounded in live web search.
type TextRequest struct {
	Prompt      string
	Image       *InlineImage
	Grounded    bool
	Temperature float32
	MaxTokens   int32
}

// TextResult carries the completion and any grounding sources the
// model consulted.
type TextResult struct {
	Text     string
	Grounded bool
	Sources  []Source
}

// Source is one grounding citation.
type Source struct {
	URI   string
	Title string
}

// ImageRequest asks for image generation from a prompt and zero or
// more source images.
type ImageRequest struct {
	Prompt string
	Images []InlineImage
}

// TextGenerator produces text completions.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (TextResult, error)
}

// ImageGenerator produces images.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (InlineImage, error)
}

// ErrNoImage indicates a generation response without image payload.
var ErrNoImage = errors.New("gemini: response contains no image")

// Client talks to the Gemini API for both text and image work.
type Client struct {
	text       *genai.Client
	image      *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
}

// NewClient builds the API client from configuration. A separate image
// key is optional; without one the text key serves both models.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("gemini api key not configured")
	}

	textClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.Gemini.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	imageClient := textClient
	if cfg.Gemini.ImageAPIKey != "" && cfg.Gemini.ImageAPIKey != cfg.Gemini.APIKey {
		imageClient, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.Gemini.ImageAPIKey})
		if err != nil {
			return nil, fmt.Errorf("create gemini image client: %w", err)
		}
	}

	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		text:       textClient,
		image:      imageClient,
		textModel:  cfg.Gemini.TextModel,
		imageModel: cfg.Gemini.ImageModel,
		timeout:    timeout,
	}, nil
}

// GenerateText runs one text completion.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (TextResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = req.MaxTokens
	}
	if req.Grounded {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := c.text.Models.GenerateContent(ctx, c.textModel, contents, cfg)
	if err != nil {
		return TextResult{}, fmt.Errorf("generate text: %w", err)
	}

	result := TextResult{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			result.Sources = append(result.Sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
		result.Grounded = len(result.Sources) > 0
	}
	return result, nil
}

// GenerateImage runs one image generation and returns the first image
// part of the response.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (InlineImage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.image.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		return InlineImage{}, fmt.Errorf("generate image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return InlineImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}
	return InlineImage{}, ErrNoImage
}
