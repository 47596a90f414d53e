package imaging

import (
	"errors"
	"log/slog"

	"shoplens/internal/gemini"
	"shoplens/internal/logging"
)

// BackdropColor is the warm beige studio backdrop every clean render
// uses.
const BackdropColor = "#E8DDD0"

// ErrAllShotsFailed indicates a multi-shot run where no shot produced
// an image.
var ErrAllShotsFailed = errors.New("imaging: all shots failed")

// SourceKind tells the angle generator what environment the source
// image carries. Lifestyle sources keep their scene; everything else
// gets the clean studio treatment.
type SourceKind int

const (
	SourceStudio SourceKind = iota
	SourceLife
)

// Generator produces product photography through the text and image
// models.
type Generator struct {
	text   gemini.TextGenerator
	image  gemini.ImageGenerator
	logger *slog.Logger
}

// NewGenerator wires the generator to its model clients.
func NewGenerator(text gemini.TextGenerator, image gemini.ImageGenerator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		text:   text,
		image:  image,
		logger: logging.WithComponent(logger, "imaging"),
	}
}

// Shot is one generated image with its display label.
type Shot struct {
	Image gemini.InlineImage
	Label string
}

const preservationRules = `
REFERENCE IMAGE:
Use the provided reference image as the EXACT product to show.
The product must remain 100% IDENTICAL:
- Same color (exact shade)
- Same design (all text, logos, prints preserved)
- Same texture and material appearance
- Same components (hardware, details)`

const antiFloatingRules = `
ANTI-FLOATING RULES (NEVER VIOLATE):
- The product must NEVER appear floating in mid-air
- The product must ALWAYS have visible contact with a surface OR visible hanging support
- Hanging products MUST be shown on a stand, hook, or display
- Surface products MUST show the contact point and a soft shadow
- The image must look like a real photograph taken by a professional photographer`
