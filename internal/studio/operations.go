package studio

import (
	"context"
	"errors"
	"fmt"

	"shoplens/internal/credits"
	"shoplens/internal/gemini"
	"shoplens/internal/imaging"
	"shoplens/internal/seo"
	"shoplens/internal/session"
)

// ErrStale indicates a generation whose workspace was cleared while
// the provider was working. The result is discarded and nothing is
// charged.
var ErrStale = errors.New("studio: workspace changed during generation, result discarded")

// Analyze runs the listing pipeline on the product photo and stores
// the result as a text asset.
func (w *Workspace) Analyze(ctx context.Context) (*seo.Result, error) {
	const feature = credits.FeatureSEOAnalysis
	if err := w.acquire(feature); err != nil {
		return nil, err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return nil, err
	}

	original, err := w.sess.Original()
	if err != nil {
		return nil, err
	}
	img, err := gemini.DecodeDataURI(original.Data)
	if err != nil {
		return nil, fmt.Errorf("decode original: %w", err)
	}

	epoch := w.sess.Epoch()
	result, err := w.pipeline.AnalyzeImage(ctx, img)
	if err != nil {
		return nil, err
	}
	if w.sess.Epoch() != epoch {
		return nil, ErrStale
	}

	w.mu.Lock()
	w.seoResult = result
	if w.name == "" {
		w.name = result.ProductName
	}
	w.mu.Unlock()

	w.sess.Add(session.Asset{
		Type:     session.AssetText,
		Data:     result.Title,
		SourceID: original.ID,
		Label:    "SEO listing",
	})
	w.settle(ctx, feature, result.ProductName)
	w.saver.Notify()
	return result, nil
}

// AnalyzeText runs the listing pipeline from a written description
// instead of a photo.
func (w *Workspace) AnalyzeText(ctx context.Context, description string) (*seo.Result, error) {
	const feature = credits.FeatureSEOContent
	if err := w.acquire(feature); err != nil {
		return nil, err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return nil, err
	}

	result, err := w.pipeline.AnalyzeText(ctx, description)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.seoResult = result
	if w.name == "" {
		w.name = result.ProductName
	}
	w.mu.Unlock()

	w.settle(ctx, feature, result.ProductName)
	w.saver.Notify()
	return result, nil
}

// GenerateStudio renders the current source onto the clean studio
// backdrop.
func (w *Workspace) GenerateStudio(ctx context.Context) (session.Asset, error) {
	const feature = credits.FeatureStudioShot
	if err := w.acquire(feature); err != nil {
		return session.Asset{}, err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return session.Asset{}, err
	}

	source, img, err := w.sourceImage()
	if err != nil {
		return session.Asset{}, err
	}

	epoch := w.sess.Epoch()
	shot, err := w.gen.StudioShot(ctx, img, w.productName())
	if err != nil {
		return session.Asset{}, err
	}
	if w.sess.Epoch() != epoch {
		return session.Asset{}, ErrStale
	}

	asset := w.sess.Add(session.Asset{
		Type:     session.AssetStudio,
		Data:     gemini.EncodeDataURI(shot.Image),
		MIMEType: shot.Image.MIMEType,
		SourceID: source.ID,
		Label:    shot.Label,
	})
	w.settle(ctx, feature, "studio render")
	w.saver.Notify()
	return asset, nil
}

// GenerateAngles produces the multi-angle set from the current source.
// The asset type of each new shot reflects the source environment:
// lifestyle sources yield LIFE assets, studio sources yield SHOT
// assets.
func (w *Workspace) GenerateAngles(ctx context.Context) ([]session.Asset, error) {
	const feature = credits.FeatureStudioShot
	if err := w.acquire(feature); err != nil {
		return nil, err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return nil, err
	}

	source, img, err := w.sourceImage()
	if err != nil {
		return nil, err
	}
	kind := sourceKind(source.Type)
	assetType := session.AssetShot
	if kind == imaging.SourceLife {
		assetType = session.AssetLife
	}

	epoch := w.sess.Epoch()
	set, err := w.gen.AngleShots(ctx, img, w.productName(), kind)
	if err != nil {
		return nil, err
	}
	if w.sess.Epoch() != epoch {
		return nil, ErrStale
	}

	assets := make([]session.Asset, 0, len(set.Shots))
	for _, shot := range set.Shots {
		assets = append(assets, w.sess.Add(session.Asset{
			Type:     assetType,
			Data:     gemini.EncodeDataURI(shot.Image),
			MIMEType: shot.Image.MIMEType,
			SourceID: source.ID,
			Label:    shot.Label,
		}))
	}
	w.settle(ctx, feature, fmt.Sprintf("%d angle shots (%s)", len(assets), set.Category))
	w.saver.Notify()
	return assets, nil
}

// GenerateRealLife renders the product into three lifestyle scenes.
func (w *Workspace) GenerateRealLife(ctx context.Context) ([]session.Asset, error) {
	const feature = credits.FeatureRealLife
	if err := w.acquire(feature); err != nil {
		return nil, err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return nil, err
	}

	source, img, err := w.sourceImage()
	if err != nil {
		return nil, err
	}

	epoch := w.sess.Epoch()
	shots, err := w.gen.Lifestyle(ctx, img, w.productName())
	if err != nil {
		return nil, err
	}
	if w.sess.Epoch() != epoch {
		return nil, ErrStale
	}

	assets := make([]session.Asset, 0, len(shots))
	for _, shot := range shots {
		assets = append(assets, w.sess.Add(session.Asset{
			Type:     session.AssetRealLife,
			Data:     gemini.EncodeDataURI(shot.Image),
			MIMEType: shot.Image.MIMEType,
			SourceID: source.ID,
			Label:    shot.Label,
		}))
	}
	w.settle(ctx, feature, fmt.Sprintf("%d lifestyle scenes", len(assets)))
	w.saver.Notify()
	return assets, nil
}

// GenerateHandsFree renders one shot from a full camera directive.
func (w *Workspace) GenerateHandsFree(ctx context.Context, opts imaging.HandsFreeOptions) (session.Asset, string, error) {
	const feature = credits.FeatureHandsFree
	if err := w.acquire(feature); err != nil {
		return session.Asset{}, "", err
	}
	defer w.release(feature)
	if err := w.precheck(ctx, feature); err != nil {
		return session.Asset{}, "", err
	}

	source, img, err := w.sourceImage()
	if err != nil {
		return session.Asset{}, "", err
	}

	epoch := w.sess.Epoch()
	shot, prompt, err := w.gen.HandsFree(ctx, img, opts)
	if err != nil {
		return session.Asset{}, prompt, err
	}
	if w.sess.Epoch() != epoch {
		return session.Asset{}, prompt, ErrStale
	}

	asset := w.sess.Add(session.Asset{
		Type:     session.AssetHandsFree,
		Data:     gemini.EncodeDataURI(shot.Image),
		MIMEType: shot.Image.MIMEType,
		SourceID: source.ID,
		Label:    shot.Label,
	})
	w.settle(ctx, feature, "handsfree render")
	w.saver.Notify()
	return asset, prompt, nil
}

func (w *Workspace) productName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seoResult != nil && w.seoResult.ProductName != "" {
		return w.seoResult.ProductName
	}
	return w.name
}
