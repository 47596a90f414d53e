package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shoplens/internal/analysis"
	"shoplens/internal/autosave"
	"shoplens/internal/credits"
	"shoplens/internal/gemini"
	"shoplens/internal/imaging"
	"shoplens/internal/library"
	"shoplens/internal/logging"
	"shoplens/internal/seo"
	"shoplens/internal/session"
)

// ErrBusy indicates a feature that is already running for this
// workspace. Generations are long; double-submitting one feature is
// always a mistake.
var ErrBusy = errors.New("studio: feature already running")

// InsufficientCreditsError reports a blocked generation with enough
// detail to prompt an upgrade.
type InsufficientCreditsError struct {
	Feature   credits.Feature
	Needed    int
	Balance   int
	Shortfall int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for %s: need %d, have %d (%d short)",
		e.Feature, e.Needed, e.Balance, e.Shortfall)
}

// Workspace is the live editing state for one product.
type Workspace struct {
	sess     *session.Session
	ledger   *credits.Ledger
	store    *library.Store
	gen      *imaging.Generator
	pipeline *analysis.Pipeline
	saver    *autosave.Saver
	logger   *slog.Logger

	email       string
	marketplace seo.Marketplace

	mu        sync.Mutex
	inflight  map[credits.Feature]bool
	projectID string
	name      string
	seoResult *seo.Result
}

// Options wires a workspace to its collaborators.
type Options struct {
	Ledger      *credits.Ledger
	Store       *library.Store
	Generator   *imaging.Generator
	Pipeline    *analysis.Pipeline
	Email       string
	Marketplace seo.Marketplace
	SaveDelay   time.Duration
	Logger      *slog.Logger
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(opts Options) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	w := &Workspace{
		sess:        session.New(),
		ledger:      opts.Ledger,
		store:       opts.Store,
		gen:         opts.Generator,
		pipeline:    opts.Pipeline,
		logger:      logging.WithComponent(logger, "studio"),
		email:       opts.Email,
		marketplace: opts.Marketplace,
		inflight:    make(map[credits.Feature]bool),
		projectID:   library.NewProjectID(),
	}
	w.saver = autosave.New(w.save, opts.SaveDelay, logger)
	return w
}

// Session exposes the underlying asset graph.
func (w *Workspace) Session() *session.Session {
	return w.sess
}

// ProjectID returns the id the workspace persists under.
func (w *Workspace) ProjectID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.projectID
}

// SEOResult returns the latest listing content, if any.
func (w *Workspace) SEOResult() *seo.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seoResult
}

// LoadOriginal places the product photo into the session and names the
// project.
func (w *Workspace) LoadOriginal(data []byte, mimeType, name string) session.Asset {
	asset := w.sess.SetOriginal(gemini.EncodeDataURI(gemini.InlineImage{Data: data, MIMEType: mimeType}), mimeType)
	w.mu.Lock()
	w.name = name
	w.seoResult = nil
	w.mu.Unlock()
	w.saver.Notify()
	return asset
}

// Resume restores a persisted project into the workspace.
func (w *Workspace) Resume(project library.Project) {
	w.sess.Restore(project.Assets, project.ActiveID, project.GalleryID)
	w.mu.Lock()
	w.projectID = project.ID
	w.name = project.Name
	w.seoResult = project.SEO
	if project.Marketplace != "" {
		w.marketplace = project.Marketplace
	}
	w.mu.Unlock()
}

// ResumeByID loads a persisted project from the library into the
// workspace.
func (w *Workspace) ResumeByID(ctx context.Context, id string) error {
	project, err := w.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	w.Resume(project)
	return nil
}

// SelectAsset pins a session asset as the source for the next
// generation run, overriding the active selection.
func (w *Workspace) SelectAsset(id string) error {
	if err := w.sess.SelectGallery(id); err != nil {
		return err
	}
	w.saver.Notify()
	return nil
}

// Clear abandons the current product. In-flight generations detect the
// epoch change and drop their results.
func (w *Workspace) Clear() {
	w.sess.Clear()
	w.mu.Lock()
	w.projectID = library.NewProjectID()
	w.name = ""
	w.seoResult = nil
	w.mu.Unlock()
}

// Close flushes pending saves.
func (w *Workspace) Close() error {
	return w.saver.Stop()
}

// Flush forces any pending autosave to run now.
func (w *Workspace) Flush() error {
	return w.saver.Flush()
}

func (w *Workspace) acquire(feature credits.Feature) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[feature] {
		return ErrBusy
	}
	w.inflight[feature] = true
	return nil
}

func (w *Workspace) release(feature credits.Feature) {
	w.mu.Lock()
	delete(w.inflight, feature)
	w.mu.Unlock()
}

// precheck verifies affordability before the provider call so a broke
// account never burns provider quota. Admin accounts skip the check.
func (w *Workspace) precheck(ctx context.Context, feature credits.Feature) error {
	if w.ledger.Unlimited(w.email) {
		return nil
	}
	sub, err := w.ledger.Current(ctx, w.email)
	if err != nil {
		return err
	}
	needed := credits.Cost(feature)
	if sub.Credits < needed {
		return &InsufficientCreditsError{
			Feature:   feature,
			Needed:    needed,
			Balance:   sub.Credits,
			Shortfall: needed - sub.Credits,
		}
	}
	return nil
}

// settle charges the feature after a successful generation and writes
// the history entry. A charge failure here is logged, not returned:
// the user already has their result.
func (w *Workspace) settle(ctx context.Context, feature credits.Feature, detail string) {
	result, err := w.ledger.Charge(ctx, w.email, feature)
	if err != nil {
		w.logger.Warn("charge after generation failed",
			slog.String(logging.FieldFeature, string(feature)),
			logging.Error(err))
	} else if !result.OK {
		w.logger.Warn("balance dropped below cost during generation",
			slog.String(logging.FieldFeature, string(feature)))
	}

	entry := library.HistoryEntry{
		ProjectID: w.ProjectID(),
		Feature:   string(feature),
		Detail:    detail,
		Credits:   credits.Cost(feature),
	}
	if err := w.store.AppendHistory(ctx, entry); err != nil {
		w.logger.Warn("history append failed", logging.Error(err))
	}
}

// save flattens the session into the project record. It runs on the
// autosave timer.
func (w *Workspace) save() error {
	assets, activeID, galleryID := w.sess.Snapshot()
	if len(assets) == 0 {
		return nil
	}
	hasOriginal := false
	for _, asset := range assets {
		if asset.Type == session.AssetOriginal {
			hasOriginal = true
			break
		}
	}
	if !hasOriginal {
		return nil
	}

	w.mu.Lock()
	project := library.Project{
		ID:          w.projectID,
		Name:        w.name,
		Marketplace: w.marketplace,
		Assets:      assets,
		ActiveID:    activeID,
		GalleryID:   galleryID,
		SEO:         w.seoResult,
	}
	w.mu.Unlock()
	if project.Name == "" {
		project.Name = "Untitled product"
	}

	evicted, err := w.store.SaveProject(context.Background(), project)
	if err != nil {
		return err
	}
	for _, id := range evicted {
		w.logger.Info("evicted oldest project to stay within quota",
			slog.String(logging.FieldProjectID, id))
	}
	return nil
}

// sourceImage resolves the generation source and decodes its payload.
func (w *Workspace) sourceImage() (session.Asset, gemini.InlineImage, error) {
	asset, err := w.sess.SelectSource()
	if err != nil {
		return session.Asset{}, gemini.InlineImage{}, err
	}
	img, err := gemini.DecodeDataURI(asset.Data)
	if err != nil {
		return session.Asset{}, gemini.InlineImage{}, fmt.Errorf("decode source asset %s: %w", asset.ID, err)
	}
	return asset, img, nil
}

// sourceKind maps the source asset type to the environment contract:
// lifestyle-derived assets keep their scene, everything else gets the
// clean studio treatment.
func sourceKind(t session.AssetType) imaging.SourceKind {
	switch t {
	case session.AssetRealLife, session.AssetLife:
		return imaging.SourceLife
	default:
		return imaging.SourceStudio
	}
}
