package imaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shoplens/internal/gemini"
	"shoplens/internal/logging"
	"shoplens/internal/seo"
)

// sceneContext describes one lifestyle setting proposed for a product.
type sceneContext struct {
	Scene        string `json:"scene"`
	Environment  string `json:"environment"`
	Lighting     string `json:"lighting"`
	HumanElement string `json:"humanElement"`
}

var defaultScenes = []sceneContext{
	{Scene: "Modern home interior setting", Environment: "Indoor living room", Lighting: "Natural daylight", HumanElement: "Product in natural use"},
	{Scene: "Cozy lifestyle environment", Environment: "Indoor bedroom or study", Lighting: "Warm ambient light", HumanElement: "Product displayed naturally"},
	{Scene: "Contemporary setting", Environment: "Modern space", Lighting: "Soft natural light", HumanElement: "Product in context"},
}

const scenePlanPrompt = `You are an expert product photographer and e-commerce specialist.

Look at this product and propose three lifestyle photography scenes
where a customer would realistically use or display it. Each scene must
be completely different from the others.

Respond ONLY with JSON:
{
  "scenes": [
    {"scene": "detailed description of realistic lifestyle scene 1", "environment": "where", "lighting": "light quality", "humanElement": "how people interact with it"},
    {"scene": "scene 2, different from scene 1", "environment": "...", "lighting": "...", "humanElement": "..."},
    {"scene": "scene 3, different from scenes 1 and 2", "environment": "...", "lighting": "...", "humanElement": "..."}
  ]
}`

func reallifePrompt(scene sceneContext, productDesc string) string {
	var b strings.Builder
	b.WriteString("HYPER-REALISTIC LIFESTYLE PRODUCT PHOTOGRAPHY\n")
	b.WriteString(preservationRules)
	fmt.Fprintf(&b, "\n\nSCENE:\n%s\n", scene.Scene)
	if scene.Environment != "" {
		fmt.Fprintf(&b, "ENVIRONMENT: %s\n", scene.Environment)
	}
	if scene.Lighting != "" {
		fmt.Fprintf(&b, "LIGHTING: %s\n", scene.Lighting)
	}
	if scene.HumanElement != "" {
		fmt.Fprintf(&b, "HUMAN ELEMENT: %s\n", scene.HumanElement)
	}
	b.WriteString(antiFloatingRules)
	if productDesc != "" {
		fmt.Fprintf(&b, "\n\nPRODUCT: %s", productDesc)
	}
	b.WriteString("\n\nOUTPUT: The product looks like it was actually photographed in this scene.")
	return b.String()
}

// planScenes asks the vision model for three lifestyle settings,
// falling back to generic interiors when the plan is unusable.
func (g *Generator) planScenes(ctx context.Context, src gemini.InlineImage) []sceneContext {
	resp, err := g.text.GenerateText(ctx, gemini.TextRequest{
		Prompt:      scenePlanPrompt,
		Image:       &src,
		Temperature: 0.8,
	})
	if err != nil {
		g.logger.Warn("scene planning unavailable, using default scenes", logging.Error(err))
		return defaultScenes
	}

	var plan struct {
		Scenes []sceneContext `json:"scenes"`
	}
	if err := seo.ExtractJSON(resp.Text, &plan); err != nil || len(plan.Scenes) == 0 {
		g.logger.Warn("scene plan unparseable, using default scenes")
		return defaultScenes
	}
	if len(plan.Scenes) > 3 {
		plan.Scenes = plan.Scenes[:3]
	}
	for len(plan.Scenes) < 3 {
		plan.Scenes = append(plan.Scenes, defaultScenes[len(plan.Scenes)])
	}
	return plan.Scenes
}

// Lifestyle generates three distinct in-context photos of the
// product. As with angle shots, the run succeeds when at least one
// scene renders.
func (g *Generator) Lifestyle(ctx context.Context, src gemini.InlineImage, productDesc string) ([]Shot, error) {
	scenes := g.planScenes(ctx, src)

	var shots []Shot
	for _, scene := range scenes {
		img, err := g.image.GenerateImage(ctx, gemini.ImageRequest{
			Prompt: reallifePrompt(scene, productDesc),
			Images: []gemini.InlineImage{src},
		})
		if err != nil {
			g.logger.Warn("lifestyle shot failed",
				slog.String("scene", scene.Scene),
				logging.Error(err))
			continue
		}
		shots = append(shots, Shot{Image: img, Label: scene.Scene})
	}

	if len(shots) == 0 {
		return nil, ErrAllShotsFailed
	}
	return shots, nil
}
