package imaging

import (
	"context"
	"log/slog"
	"strings"

	"shoplens/internal/gemini"
	"shoplens/internal/logging"
	"shoplens/internal/seo"
)

// Category is the natural stance of a product, driving how each angle
// shot stages it.
type Category string

const (
	CategoryApparelWorn     Category = "APPAREL_WORN"
	CategoryApparelFlat     Category = "APPAREL_FLAT"
	CategoryApparelGhost    Category = "APPAREL_GHOST"
	CategoryWallMounted     Category = "WALL_MOUNTED"
	CategorySuspended       Category = "SUSPENDED"
	CategoryHangingOrnament Category = "HANGING_ORNAMENT"
	CategorySmallIrregular  Category = "SMALL_IRREGULAR"
	CategoryStandardGround  Category = "STANDARD_GROUND"
)

// Hanging reports whether the product needs visible hanging support in
// every shot.
func (c Category) Hanging() bool {
	return c == CategorySuspended || c == CategoryHangingOrnament
}

// Staging describes how to photograph one category: three camera
// angles and the supporting display.
type Staging struct {
	Angles  [3]string
	Support string
}

var stagingByCategory = map[Category]Staging{
	CategoryApparelWorn: {
		Angles:  [3]string{"front view of person wearing it", "three-quarter side view", "back view"},
		Support: "Person wearing the clothing in professional studio, feet touching floor",
	},
	CategoryApparelFlat: {
		Angles:  [3]string{"top-down flat lay", "slightly angled overhead", "detail closeup"},
		Support: "Flat lay on clean solid surface, fabric touching surface completely",
	},
	CategoryApparelGhost: {
		Angles:  [3]string{"front view ghost mannequin", "side view", "back view"},
		Support: "Ghost mannequin 3D effect, bottom hem touching floor/surface",
	},
	CategoryWallMounted: {
		Angles:  [3]string{"straight-on front", "angled left view", "angled right view"},
		Support: "Mounted on clean wall with visible mounting hardware",
	},
	CategorySuspended: {
		Angles:  [3]string{"view from below", "side view", "three-quarter view"},
		Support: "Hanging from visible ceiling mount/chain/hook",
	},
	CategoryHangingOrnament: {
		Angles:  [3]string{"front view on ornament stand", "side view on display hook", "three-quarter on jewelry bust"},
		Support: "Hanging from elegant ornament stand or display hook, hanging loop visible at top, product hanging down naturally",
	},
	CategorySmallIrregular: {
		Angles:  [3]string{"front on display riser", "three-quarter on platform", "side profile on stand"},
		Support: "Placed on geometric riser/podium, product base touching platform surface",
	},
	CategoryStandardGround: {
		Angles:  [3]string{"front view standing on floor", "side view on surface", "back view grounded"},
		Support: "Standing firmly on studio floor, base touching ground",
	},
}

// StagingFor returns the staging plan for a category, defaulting to
// standard ground placement for anything unrecognized.
func StagingFor(c Category) Staging {
	if staging, ok := stagingByCategory[c]; ok {
		return staging
	}
	return stagingByCategory[CategoryStandardGround]
}

const physicsPrompt = `You are an expert industrial designer.
Analyze this product image and classify its natural stance for photography.

CATEGORIES:
- APPAREL_WORN: clothing on a person or model
- APPAREL_FLAT: folded clothing, flat lay
- APPAREL_GHOST: ghost mannequin style
- WALL_MOUNTED: wall-mounted items (signs, shelves)
- SUSPENDED: large hanging items (chandeliers, hanging plants)
- HANGING_ORNAMENT: small hanging items with hooks or loops (ornaments, keychains, pendants, charms)
- SMALL_IRREGULAR: small items that sit on surfaces (jewelry boxes, controllers, gadgets)
- STANDARD_GROUND: standing items (bottles, furniture, boxes)

DETECTION RULES:
- A hanging loop, hook, string, or ribbon at the top means HANGING_ORNAMENT
- Stockings, decorations with loops, keychains, bag charms, pendants are HANGING_ORNAMENT
- Such products belong on display stands or hooks, never floating

Respond ONLY with JSON:
{
  "category": "CATEGORY_NAME",
  "detectedObject": "brief description",
  "hasHumanModel": true/false,
  "hasHangingLoop": true/false
}`

// Physics is the classification result for one product photo.
type Physics struct {
	Category       Category `json:"category"`
	DetectedObject string   `json:"detectedObject"`
	HasHumanModel  bool     `json:"hasHumanModel"`
	HasHangingLoop bool     `json:"hasHangingLoop"`
}

// HangingProduct reports whether shots must show hanging support.
func (p Physics) HangingProduct() bool {
	return p.Category.Hanging() || p.HasHangingLoop
}

// ClassifyPhysics asks the vision model for the product's natural
// stance. Any failure falls back to standard ground placement so shot
// generation never blocks on classification.
func ClassifyPhysics(ctx context.Context, gen gemini.TextGenerator, img gemini.InlineImage, logger *slog.Logger) Physics {
	if logger == nil {
		logger = logging.NewNop()
	}
	fallback := Physics{Category: CategoryStandardGround, DetectedObject: "Product"}

	resp, err := gen.GenerateText(ctx, gemini.TextRequest{
		Prompt:      physicsPrompt,
		Image:       &img,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Warn("physics classification unavailable, using standard ground", logging.Error(err))
		return fallback
	}

	var physics Physics
	if err := seo.ExtractJSON(resp.Text, &physics); err != nil {
		logger.Warn("physics classification unparseable", logging.Error(err))
		return fallback
	}
	physics.Category = Category(strings.ToUpper(strings.TrimSpace(string(physics.Category))))
	if _, ok := stagingByCategory[physics.Category]; !ok {
		physics.Category = CategoryStandardGround
	}
	return physics
}
