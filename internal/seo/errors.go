package seo

import "errors"

var (
	// ErrMissingTitle indicates a result without a usable title.
	ErrMissingTitle = errors.New("seo: result has no title")

	// ErrNoJSON indicates model output that contains no JSON payload.
	ErrNoJSON = errors.New("seo: no JSON object found in response")
)
