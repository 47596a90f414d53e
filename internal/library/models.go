package library

import (
	"time"

	"shoplens/internal/seo"
	"shoplens/internal/session"
)

// Project is one saved product workspace.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Marketplace seo.Marketplace `json:"marketplace"`

	Assets    []session.Asset `json:"assets"`
	ActiveID  string          `json:"activeId,omitempty"`
	GalleryID string          `json:"galleryId,omitempty"`

	SEO *seo.Result `json:"seo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssetCount reports how many assets the project carries.
func (p Project) AssetCount() int {
	return len(p.Assets)
}

// HistoryEntry records one completed generation run.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"projectId"`
	Feature   string    `json:"feature"`
	Detail    string    `json:"detail,omitempty"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// Usage summarizes library occupancy against the configured quotas.
type Usage struct {
	Projects    int
	MaxProjects int
	Assets      int
	MaxAssets   int
}

// ProjectsFull reports whether another project would exceed the quota.
func (u Usage) ProjectsFull() bool {
	return u.Projects >= u.MaxProjects
}

// AssetRoom reports how many more assets fit.
func (u Usage) AssetRoom() int {
	room := u.MaxAssets - u.Assets
	if room < 0 {
		return 0
	}
	return room
}
