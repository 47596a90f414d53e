package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"shoplens/internal/gemini"
	"shoplens/internal/session"
)

// readImageFile loads an image from disk and determines its MIME type
// from the payload.
func readImageFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image %s is empty", path)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%s is not an image (detected %s)", path, mime)
	}
	return data, mime, nil
}

// writeAssets decodes generated image assets into files under dir and
// returns the written paths.
func writeAssets(dir string, assets []session.Asset) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	paths := make([]string, 0, len(assets))
	for i, asset := range assets {
		if !asset.Type.IsImage() {
			continue
		}
		img, err := gemini.DecodeDataURI(asset.Data)
		if err != nil {
			return paths, fmt.Errorf("decode asset %s: %w", asset.ID, err)
		}
		name := fmt.Sprintf("%s_%d%s", asset.Type, i+1, extensionFor(img.MIMEType))
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, img.Data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", target, err)
		}
		paths = append(paths, target)
	}
	return paths, nil
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
