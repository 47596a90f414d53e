package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"shoplens/internal/library"
	"shoplens/internal/seo"
	"shoplens/internal/session"
)

func TestGenerateAssetFlagSelectsSessionAsset(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := library.Open(env.cfg)
	if err != nil {
		t.Fatalf("open library store: %v", err)
	}
	original := session.Asset{
		ID:        session.NewAssetID(session.AssetOriginal),
		Type:      session.AssetOriginal,
		Data:      "data:image/png;base64,iVBORw0KGgo=",
		MIMEType:  "image/png",
		CreatedAt: time.Now(),
	}
	project := library.Project{
		ID:          library.NewProjectID(),
		Name:        "Mug",
		Marketplace: seo.MarketplaceEtsy,
		Assets:      []session.Asset{original},
		ActiveID:    original.ID,
	}
	if _, err := store.SaveProject(context.Background(), project); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close library store: %v", err)
	}

	// An unknown asset id must fail during setup, before any provider
	// call is issued.
	_, _, err = runCLI(t,
		[]string{"generate", "shots", "--project", project.ID, "--asset", "missing"},
		env.configPath)
	if !errors.Is(err, session.ErrAssetNotFound) {
		t.Fatalf("err = %v, want session.ErrAssetNotFound", err)
	}
}
