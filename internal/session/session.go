package session

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoOriginal indicates an operation that needs a product photo
	// before it can run.
	ErrNoOriginal = errors.New("session: no original image loaded")

	// ErrAssetNotFound indicates a lookup for an id the session does
	// not hold.
	ErrAssetNotFound = errors.New("session: asset not found")
)

// Session is the working state for one product. All methods are safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	assets    []Asset
	byID      map[string]int
	activeID  string
	galleryID string
	epoch     uint64
}

// New returns an empty session.
func New() *Session {
	return &Session{byID: make(map[string]int)}
}

// Epoch returns a counter that increments whenever the session is
// cleared. Long-running generations compare epochs to detect that
// their result belongs to a workspace the user already abandoned.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// SetOriginal loads the product photo, replacing all prior state.
func (s *Session) SetOriginal(data, mimeType string) Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	asset := Asset{
		ID:        NewAssetID(AssetOriginal),
		Type:      AssetOriginal,
		Data:      data,
		MIMEType:  mimeType,
		CreatedAt: time.Now(),
	}
	s.append(asset)
	s.activeID = asset.ID
	return asset
}

// Add appends a generated asset and makes it the active selection.
func (s *Session) Add(asset Asset) Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	if asset.ID == "" {
		asset.ID = NewAssetID(asset.Type)
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}
	s.append(asset)
	if asset.Type.IsImage() {
		s.activeID = asset.ID
	}
	return asset
}

// Get returns the asset with the given id.
func (s *Session) Get(id string) (Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return Asset{}, ErrAssetNotFound
	}
	return s.assets[idx], nil
}

// SelectGallery marks an asset as the user's explicit pick. Selecting
// an unknown id returns ErrAssetNotFound and leaves state unchanged.
func (s *Session) SelectGallery(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrAssetNotFound
	}
	s.galleryID = id
	return nil
}

// ClearGallery removes the explicit pick, falling back to the active
// selection.
func (s *Session) ClearGallery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.galleryID = ""
}

// SelectSource resolves the image that the next generation should
// start from: the gallery pick wins, then the active selection, then
// the original. Text assets are never returned.
func (s *Session) SelectSource() (Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range []string{s.galleryID, s.activeID} {
		if id == "" {
			continue
		}
		if idx, ok := s.byID[id]; ok && s.assets[idx].Type.IsImage() {
			return s.assets[idx], nil
		}
	}
	if idx, ok := s.firstOfType(AssetOriginal); ok {
		return s.assets[idx], nil
	}
	return Asset{}, ErrNoOriginal
}

// Original returns the loaded product photo.
func (s *Session) Original() (Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.firstOfType(AssetOriginal); ok {
		return s.assets[idx], nil
	}
	return Asset{}, ErrNoOriginal
}

// Assets returns a copy of the asset list in insertion order.
func (s *Session) Assets() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Len reports how many assets the session holds.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets)
}

// ActiveID returns the id of the current active selection.
func (s *Session) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// GalleryID returns the id of the explicit gallery pick, if any.
func (s *Session) GalleryID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.galleryID
}

// Clear drops all assets and advances the epoch so stale generation
// results can be detected and discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Restore replaces the session contents from a persisted snapshot.
func (s *Session) Restore(assets []Asset, activeID, galleryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, asset := range assets {
		s.append(asset)
	}
	if _, ok := s.byID[activeID]; ok {
		s.activeID = activeID
	}
	if _, ok := s.byID[galleryID]; ok {
		s.galleryID = galleryID
	}
}

// Snapshot captures the state needed to persist and later restore the
// session.
func (s *Session) Snapshot() (assets []Asset, activeID, galleryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets = make([]Asset, len(s.assets))
	copy(assets, s.assets)
	return assets, s.activeID, s.galleryID
}

func (s *Session) reset() {
	s.assets = nil
	s.byID = make(map[string]int)
	s.activeID = ""
	s.galleryID = ""
	s.epoch++
}

func (s *Session) append(asset Asset) {
	s.byID[asset.ID] = len(s.assets)
	s.assets = append(s.assets, asset)
}

func (s *Session) firstOfType(t AssetType) (int, bool) {
	for i, asset := range s.assets {
		if asset.Type == t {
			return i, true
		}
	}
	return 0, false
}
