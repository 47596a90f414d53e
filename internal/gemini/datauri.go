package gemini

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI renders an inline image as a data URI for storage in
// the asset graph.
func EncodeDataURI(img InlineImage) string {
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// DecodeDataURI parses a stored data URI back into an inline image.
func DecodeDataURI(uri string) (InlineImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return InlineImage{}, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return InlineImage{}, fmt.Errorf("malformed data uri")
	}
	mime, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return InlineImage{}, fmt.Errorf("data uri is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return InlineImage{}, fmt.Errorf("decode data uri payload: %w", err)
	}
	if mime == "" {
		mime = "image/png"
	}
	return InlineImage{Data: data, MIMEType: mime}, nil
}
