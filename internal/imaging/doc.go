// Package imaging generates product photography: clean studio
// renders, physics-aware multi-angle shots, lifestyle scenes, and the
// handsfree camera-directive mode. All prompts insist the product stay
// identical to the reference image and never float unsupported.
package imaging
