package imaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shoplens/internal/gemini"
	"shoplens/internal/logging"
)

// AngleSet is the result of one multi-angle run. Individual shots can
// fail; the run succeeds as long as at least one image came back.
type AngleSet struct {
	Shots    []Shot
	Category Category
	Failed   int
}

func anglePrompt(angle, staging string, physics Physics, productDesc string, kind SourceKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional product photography - %s\n", angle)
	b.WriteString(preservationRules)
	fmt.Fprintf(&b, "\n\nCAMERA ANGLE:\nShow the product from: %s\nThis is like rotating a camera around a frozen product.\n", angle)

	if kind == SourceLife {
		b.WriteString(`
ENVIRONMENT:
Keep the existing scene from the reference image. The product stays in
its lifestyle setting; only the camera moves. Preserve the lighting,
surfaces, and surroundings of the original scene.`)
	} else {
		fmt.Fprintf(&b, "\nSTAGING:\n%s\n", staging)
		if physics.HangingProduct() {
			b.WriteString(`
THIS IS A HANGING PRODUCT:
- Show it on a display stand, hook, or ornament hanger
- The hanging loop at the top stays visible
- The product hangs down naturally with gravity
- The support must be clearly visible in the image`)
		}
		fmt.Fprintf(&b, "\nBACKGROUND:\nClean, warm beige studio backdrop (%s)\nProfessional product photography lighting\nSoft, realistic contact shadow\n", BackdropColor)
	}

	b.WriteString(antiFloatingRules)
	if productDesc != "" {
		fmt.Fprintf(&b, "\n\nPRODUCT: %s", productDesc)
	}
	b.WriteString("\n\nOUTPUT: The identical product from the specified camera angle.")
	return b.String()
}

// AngleShots generates three camera angles of the product. The source
// kind decides the environment: lifestyle sources keep their scene,
// everything else is staged on the clean studio backdrop according to
// the product's physics.
func (g *Generator) AngleShots(ctx context.Context, src gemini.InlineImage, productDesc string, kind SourceKind) (AngleSet, error) {
	physics := ClassifyPhysics(ctx, g.text, src, g.logger)
	staging := StagingFor(physics.Category)

	set := AngleSet{Category: physics.Category}
	for _, angle := range staging.Angles {
		img, err := g.image.GenerateImage(ctx, gemini.ImageRequest{
			Prompt: anglePrompt(angle, staging.Support, physics, productDesc, kind),
			Images: []gemini.InlineImage{src},
		})
		if err != nil {
			set.Failed++
			g.logger.Warn("angle shot failed",
				slog.String("angle", angle),
				logging.Error(err))
			continue
		}
		set.Shots = append(set.Shots, Shot{Image: img, Label: angle})
	}

	if len(set.Shots) == 0 {
		return set, ErrAllShotsFailed
	}
	return set, nil
}
