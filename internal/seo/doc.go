// Package seo defines the listing content model produced by analysis and
// the marketplace-specific rules applied to it. Each marketplace carries
// its own field set and hard limits; validation is lenient and repairs
// oversized fields instead of rejecting them.
package seo
