package imaging

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shoplens/internal/gemini"
)

// HandsFreeOptions selects the camera setup for a handsfree shot. The
// zero value of each field falls back to a sensible default.
type HandsFreeOptions struct {
	AspectRatio string // "original" or a W:H ratio
	CameraAngle string
	ShotScale   string
	Lens        string
	Directive   string // free-form extra instruction, takes priority
}

// AspectRatios lists the selectable output ratios.
var AspectRatios = []string{
	"original", "1:1", "4:3", "3:2", "16:9", "3:4", "2:3", "9:16", "21:9", "5:4", "4:5", "2.35:1",
}

var cameraAngles = map[string]string{
	"eye_level": "Position camera at EYE LEVEL (straight on, parallel to the ground, looking directly at the subject).",
	"shoulder":  "Position camera at SHOULDER HEIGHT (slightly below eye level, about 140cm from ground).",
	"waist":     "Position camera at WAIST HEIGHT (about 100cm from ground, looking slightly up at subject).",
	"knee":      "Position camera at KNEE HEIGHT (about 50cm from ground, low angle looking up).",
	"ground":    "Position camera at GROUND LEVEL (camera on the floor, worm's eye perspective looking up).",
	"worm":      "Position camera BELOW GROUND looking UP (extreme low angle, dramatic upward perspective).",
	"low":       "Position camera at LOW ANGLE (below eye level, looking up at the subject, makes subject appear powerful).",
	"high":      "Position camera at HIGH ANGLE (above eye level, looking down at the subject, bird perspective).",
	"bird":      "Position camera DIRECTLY ABOVE looking DOWN (90 degree top-down view, flat lay perspective).",
	"drone":     "Position camera as DRONE SHOT (high aerial view, about 45 degree angle looking down).",
	"satellite": "Position camera as SATELLITE VIEW (extreme top-down, map-like perspective).",
	"dutch":     "Position camera at DUTCH ANGLE (tilted 15-30 degrees, diagonal horizon line for dramatic effect).",
}

var shotScales = map[string]string{
	"extreme_close": "Frame as EXTREME CLOSE-UP (only a small detail of the product fills the entire frame, macro shot).",
	"close":         "Frame as CLOSE-UP (product fills 80-90% of the frame, minimal background visible).",
	"medium_close":  "Frame as MEDIUM CLOSE-UP (product fills 60-70% of the frame, some context visible).",
	"medium":        "Frame as MEDIUM SHOT (product fills 40-50% of the frame, significant environment visible).",
	"medium_full":   "Frame as MEDIUM FULL SHOT (full product visible with some breathing room around it).",
	"full":          "Frame as FULL SHOT (entire product visible with comfortable margins, standard product photography).",
	"wide":          "Frame as WIDE SHOT (product appears smaller in frame, environment is prominent).",
	"extreme_wide":  "Frame as EXTREME WIDE SHOT (product is small in the frame, vast environment dominates).",
	"cowboy":        "Frame as COWBOY SHOT (mid-thigh framing, classic Western cinema style, shows product with context).",
	"choker":        "Frame as CHOKER SHOT (very tight framing, just below the chin level, intimate close-up).",
}

var lenses = map[string]string{
	"8mm":        "Apply 8MM FISHEYE LENS effect (extreme barrel distortion, curved edges, 180 degree field of view).",
	"14mm":       "Apply 14MM ULTRA WIDE LENS effect (dramatic perspective stretching, exaggerated foreground, architectural distortion).",
	"24mm":       "Apply 24MM WIDE ANGLE LENS effect (slight perspective distortion, environmental context, dynamic feel).",
	"35mm":       "Apply 35MM CLASSIC LENS effect (natural perspective, minimal distortion, documentary style).",
	"50mm":       "Apply 50MM NATURAL LENS effect (human eye perspective, no distortion, true-to-life rendering).",
	"85mm":       "Apply 85MM PORTRAIT LENS effect (beautiful background blur, slight compression, subject isolation).",
	"200mm":      "Apply 200MM TELEPHOTO LENS effect (strong background compression, flat perspective, subject pops from background).",
	"anamorphic": "Apply ANAMORPHIC LENS effect (cinematic widescreen look, horizontal lens flares, oval bokeh).",
	"retro":      "Apply RETRO FILM AESTHETIC (vintage color grading, film grain, slightly faded colors, nostalgic warmth).",
	"phaseone":   "Apply PHASE ONE IQ4 MEDIUM FORMAT look (ultra high resolution, exceptional detail, smooth tonal gradations, professional studio quality).",
	"arri":       "Apply ARRI ALEXA 35 CINEMA look (Hollywood-grade color science, filmic skin tones, rich shadows, cinematic depth).",
}

// CameraAngleIDs lists the selectable camera angles.
func CameraAngleIDs() []string {
	return []string{"eye_level", "shoulder", "waist", "knee", "ground", "worm", "low", "high", "bird", "drone", "satellite", "dutch"}
}

// ShotScaleIDs lists the selectable framing scales.
func ShotScaleIDs() []string {
	return []string{"extreme_close", "close", "medium_close", "medium", "medium_full", "full", "wide", "extreme_wide", "cowboy", "choker"}
}

// LensIDs lists the selectable lens looks.
func LensIDs() []string {
	return []string{"8mm", "14mm", "24mm", "35mm", "50mm", "85mm", "200mm", "anamorphic", "retro", "phaseone", "arri"}
}

func aspectInstruction(ratio string) string {
	ratio = strings.TrimSpace(ratio)
	if ratio == "" || ratio == "original" {
		return "Maintain the original aspect ratio of the source image."
	}
	wText, hText, ok := strings.Cut(ratio, ":")
	if !ok {
		return "Maintain the original aspect ratio of the source image."
	}
	w, errW := strconv.ParseFloat(wText, 64)
	h, errH := strconv.ParseFloat(hText, 64)
	if errW != nil || errH != nil {
		return "Maintain the original aspect ratio of the source image."
	}
	switch {
	case w > h:
		return fmt.Sprintf("OUTPUT IMAGE MUST BE %s ASPECT RATIO (horizontal/landscape format, width greater than height).", ratio)
	case h > w:
		return fmt.Sprintf("OUTPUT IMAGE MUST BE %s ASPECT RATIO (vertical/portrait format, height greater than width).", ratio)
	default:
		return fmt.Sprintf("OUTPUT IMAGE MUST BE %s ASPECT RATIO (square format, equal width and height).", ratio)
	}
}

// BuildHandsFreePrompt assembles the full camera directive from the
// selected options. The free-form directive, when present, leads the
// prompt so it overrides the structured choices.
func BuildHandsFreePrompt(opts HandsFreeOptions) string {
	angle, ok := cameraAngles[opts.CameraAngle]
	if !ok {
		angle = cameraAngles["eye_level"]
	}
	scale, ok := shotScales[opts.ShotScale]
	if !ok {
		scale = shotScales["full"]
	}
	lens, ok := lenses[opts.Lens]
	if !ok {
		lens = lenses["50mm"]
	}

	var b strings.Builder
	b.WriteString("Professional product photograph of the product in the reference image.\n\n")
	if directive := strings.TrimSpace(opts.Directive); directive != "" {
		fmt.Fprintf(&b, "PRIORITY DIRECTIVE: %s\n\n", directive)
	}
	b.WriteString(angle)
	b.WriteString("\n")
	b.WriteString(scale)
	b.WriteString("\n")
	b.WriteString(lens)
	b.WriteString("\n")
	b.WriteString(aspectInstruction(opts.AspectRatio))
	b.WriteString(preservationRules)
	b.WriteString("\n")
	b.WriteString(antiFloatingRules)
	return b.String()
}

// HandsFree generates one shot from a full camera directive.
func (g *Generator) HandsFree(ctx context.Context, src gemini.InlineImage, opts HandsFreeOptions) (Shot, string, error) {
	prompt := BuildHandsFreePrompt(opts)
	img, err := g.image.GenerateImage(ctx, gemini.ImageRequest{
		Prompt: prompt,
		Images: []gemini.InlineImage{src},
	})
	if err != nil {
		return Shot{}, prompt, fmt.Errorf("handsfree shot: %w", err)
	}
	return Shot{Image: img, Label: "Handsfree"}, prompt, nil
}
