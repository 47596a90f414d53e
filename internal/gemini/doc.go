// Package gemini wraps the Google GenAI SDK behind small text and
// image generation interfaces so the analysis and imaging pipelines
// can be exercised against fakes.
package gemini
