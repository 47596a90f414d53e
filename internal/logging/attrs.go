package logging

import (
	"io"
	"log/slog"
)

// Field name constants shared across packages so log output stays
// consistent no matter who emits the record.
const (
	FieldComponent   = "component"
	FieldProjectID   = "project_id"
	FieldAssetID     = "asset_id"
	FieldFeature     = "feature"
	FieldMarketplace = "marketplace"
	FieldPlan        = "plan"
	FieldModel       = "model"
	FieldDurationMS  = "duration_ms"
	FieldError       = "error"
)

// Error wraps an error as a standard log attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(FieldError, err.Error())
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NewNop returns a logger that discards every record. Useful in tests
// and as a safe fallback when no logger was configured.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
