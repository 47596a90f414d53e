package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetType classifies how an asset entered the session.
type AssetType string

const (
	// AssetOriginal is the user-supplied product photo.
	AssetOriginal AssetType = "original"
	// AssetStudio is a clean studio rendition of the original.
	AssetStudio AssetType = "studio"
	// AssetRealLife places the product in a lifestyle scene.
	AssetRealLife AssetType = "reallife"
	// AssetShot is an additional studio angle.
	AssetShot AssetType = "shot"
	// AssetLife is an additional angle generated from a lifestyle scene.
	AssetLife AssetType = "life"
	// AssetText holds listing copy rather than an image.
	AssetText AssetType = "text"
	// AssetHandsFree is a fully automated composite result.
	AssetHandsFree AssetType = "handsfree"
)

// ParseAssetType validates a stored type value.
func ParseAssetType(value string) (AssetType, error) {
	t := AssetType(strings.ToLower(strings.TrimSpace(value)))
	switch t {
	case AssetOriginal, AssetStudio, AssetRealLife, AssetShot, AssetLife, AssetText, AssetHandsFree:
		return t, nil
	default:
		return "", fmt.Errorf("asset type: unsupported value %q", value)
	}
}

// IsImage reports whether the asset type carries image payload.
func (t AssetType) IsImage() bool {
	return t != AssetText
}

// Asset is one node in the session graph.
type Asset struct {
	ID        string    `json:"id"`
	Type      AssetType `json:"type"`
	Data      string    `json:"data"`               // data URI for images, JSON for text
	MIMEType  string    `json:"mimeType,omitempty"` // payload type for image assets
	SourceID  string    `json:"sourceId,omitempty"` // asset this one was generated from
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAssetID builds a collision-resistant asset identifier. The
// nanosecond timestamp keeps ids sortable; the uuid suffix keeps rapid
// successive generations distinct.
func NewAssetID(t AssetType) string {
	return fmt.Sprintf("%s_%d_%s", t, time.Now().UnixNano(), uuid.NewString()[:8])
}
