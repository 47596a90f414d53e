package imaging

import (
	"context"
	"fmt"
	"strings"

	"shoplens/internal/gemini"
)

func studioPrompt(physics Physics, productDesc string) string {
	var b strings.Builder
	b.WriteString("Professional e-commerce product photography studio.\n\n")
	fmt.Fprintf(&b, "BACKGROUND:\nClean, warm beige studio backdrop (%s)\nProfessional product photography lighting\nSoft, realistic contact shadow\n", BackdropColor)
	fmt.Fprintf(&b, "\nSTAGING:\n%s\n", StagingFor(physics.Category).Support)
	if physics.HangingProduct() {
		b.WriteString(`
THIS IS A HANGING PRODUCT:
- Show it on a display stand, hook, or ornament hanger
- The hanging loop at the top stays visible
- The product hangs down naturally with gravity
- The support must be clearly visible in the image`)
	}
	b.WriteString(preservationRules)
	b.WriteString("\n")
	b.WriteString(antiFloatingRules)
	if productDesc != "" {
		fmt.Fprintf(&b, "\n\nPRODUCT: %s", productDesc)
	}
	b.WriteString("\n\nOUTPUT: The identical product on the clean studio backdrop, properly grounded or displayed.")
	return b.String()
}

// StudioShot swaps the product onto a clean studio background. The
// product's physics drive the staging so hanging items get a visible
// support instead of floating.
func (g *Generator) StudioShot(ctx context.Context, src gemini.InlineImage, productDesc string) (Shot, error) {
	physics := ClassifyPhysics(ctx, g.text, src, g.logger)

	img, err := g.image.GenerateImage(ctx, gemini.ImageRequest{
		Prompt: studioPrompt(physics, productDesc),
		Images: []gemini.InlineImage{src},
	})
	if err != nil {
		return Shot{}, fmt.Errorf("studio shot: %w", err)
	}
	return Shot{Image: img, Label: "Studio"}, nil
}
