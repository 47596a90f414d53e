package seo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedBlock    = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls the first JSON object out of free-form model output.
// Models wrap payloads in code fences, prepend prose, and occasionally
// emit trailing commas or raw control characters; all of those are
// repaired before unmarshalling.
func ExtractJSON(text string, out any) error {
	candidate := strings.TrimSpace(text)

	if match := fencedBlock.FindStringSubmatch(candidate); match != nil {
		candidate = strings.TrimSpace(match[1])
	}

	start := strings.IndexByte(candidate, '{')
	if start < 0 {
		return ErrNoJSON
	}
	end := matchingBrace(candidate, start)
	if end < 0 {
		// Unbalanced output, take everything after the first brace and
		// let the decoder report the damage.
		end = len(candidate)
	}
	candidate = candidate[start:end]

	candidate = stripControlChars(candidate)
	candidate = trailingCommas.ReplaceAllString(candidate, "$1")

	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("parse model JSON: %w", err)
	}
	return nil
}

// matchingBrace returns the index just past the brace that closes the
// object opened at start, skipping braces inside string literals.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// stripControlChars removes raw control characters that are invalid in
// JSON string literals, preserving newlines and tabs outside strings by
// replacing them with spaces inside string literals.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			if c < 0x20 {
				b.WriteByte(' ')
				continue
			}
		} else if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}
