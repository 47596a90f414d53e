package library_test

import (
	"context"
	"fmt"
	"testing"

	"shoplens/internal/credits"
	"shoplens/internal/library"
	"shoplens/internal/seo"
	"shoplens/internal/session"
	"shoplens/internal/testsupport"
)

func testProject(id string, assetCount int) library.Project {
	assets := make([]session.Asset, assetCount)
	for i := range assets {
		assets[i] = session.Asset{
			ID:   fmt.Sprintf("%s_asset_%d", id, i),
			Type: session.AssetStudio,
			Data: "data:image/png;base64,AAA",
		}
	}
	return library.Project{
		ID:          id,
		Name:        "Project " + id,
		Marketplace: seo.MarketplaceEtsy,
		Assets:      assets,
	}
}

func TestProjectRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	project := testProject("p1", 2)
	project.ActiveID = project.Assets[1].ID
	project.SEO = &seo.Result{
		Marketplace: seo.MarketplaceEtsy,
		Title:       "Handmade Ceramic Mug",
		Keywords:    []string{"mug", "ceramic"},
		Grounded:    true,
	}

	if _, err := store.SaveProject(ctx, project); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	loaded, err := store.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if loaded.Name != project.Name || loaded.Marketplace != seo.MarketplaceEtsy {
		t.Fatalf("loaded = %+v", loaded)
	}
	if len(loaded.Assets) != 2 || loaded.ActiveID != project.ActiveID {
		t.Fatal("assets or active selection lost in round trip")
	}
	if loaded.SEO == nil || loaded.SEO.Title != "Handmade Ceramic Mug" || !loaded.SEO.Grounded {
		t.Fatalf("seo result lost: %+v", loaded.SEO)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.GetProject(context.Background(), "missing"); err != library.ErrProjectNotFound {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestSaveEvictsOldestOverProjectQuota(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotas(3, 100, 10))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if _, err := store.SaveProject(ctx, testProject(fmt.Sprintf("p%d", i), 1)); err != nil {
			t.Fatalf("SaveProject p%d: %v", i, err)
		}
	}

	evicted, err := store.SaveProject(ctx, testProject("p4", 1))
	if err != nil {
		t.Fatalf("SaveProject p4: %v", err)
	}
	if len(evicted) != 1 || evicted[0] != "p1" {
		t.Fatalf("evicted = %v, want [p1]", evicted)
	}

	usage, err := store.StorageUsage(ctx)
	if err != nil {
		t.Fatalf("StorageUsage: %v", err)
	}
	if usage.Projects != 3 {
		t.Fatalf("projects = %d, want 3", usage.Projects)
	}
}

func TestSaveEvictsUntilAssetQuotaFits(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotas(10, 10, 10))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if _, err := store.SaveProject(ctx, testProject(fmt.Sprintf("p%d", i), 3)); err != nil {
			t.Fatalf("SaveProject p%d: %v", i, err)
		}
	}

	// 9 assets stored, quota 10; a 5-asset save must evict two oldest.
	evicted, err := store.SaveProject(ctx, testProject("p4", 5))
	if err != nil {
		t.Fatalf("SaveProject p4: %v", err)
	}
	if len(evicted) != 2 {
		t.Fatalf("evicted = %v, want two projects", evicted)
	}

	usage, err := store.StorageUsage(ctx)
	if err != nil {
		t.Fatalf("StorageUsage: %v", err)
	}
	if usage.Assets > 10 {
		t.Fatalf("assets = %d, exceeds quota", usage.Assets)
	}
}

func TestSaveRejectsProjectOverWholeQuota(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotas(5, 4, 10))
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.SaveProject(context.Background(), testProject("big", 5)); err != library.ErrProjectTooLarge {
		t.Fatalf("err = %v, want ErrProjectTooLarge", err)
	}
}

func TestUpdateDoesNotCountAgainstItself(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotas(1, 100, 10))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.SaveProject(ctx, testProject("p1", 1)); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	evicted, err := store.SaveProject(ctx, testProject("p1", 2))
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if len(evicted) != 0 {
		t.Fatalf("updating in place evicted %v", evicted)
	}
}

func TestDeleteProject(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.SaveProject(ctx, testProject("p1", 1)); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if err := store.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if err := store.DeleteProject(ctx, "p1"); err != library.ErrProjectNotFound {
		t.Fatalf("second delete err = %v, want ErrProjectNotFound", err)
	}
}

func TestListProjectsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.SaveProject(ctx, testProject(id, 1)); err != nil {
			t.Fatalf("SaveProject %s: %v", id, err)
		}
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("count = %d, want 3", len(projects))
	}
	if projects[0].ID != "c" {
		t.Fatalf("first = %s, want most recently saved", projects[0].ID)
	}
}

func TestSubscriptionRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	_, found, err := store.Subscription(ctx)
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if found {
		t.Fatal("fresh store should have no subscription")
	}

	sub := credits.Subscription{Email: "seller@example.com", PlanID: "pro", Credits: 400}
	if err := store.SaveSubscription(ctx, sub); err != nil {
		t.Fatalf("SaveSubscription: %v", err)
	}

	loaded, found, err := store.Subscription(ctx)
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if !found || loaded.PlanID != "pro" || loaded.Credits != 400 {
		t.Fatalf("loaded = %+v found=%v", loaded, found)
	}
}

func TestHistoryRingBuffer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotas(20, 200, 5))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		entry := library.HistoryEntry{
			ProjectID: "p1",
			Feature:   "studio_shot",
			Detail:    fmt.Sprintf("run %d", i),
			Credits:   5,
		}
		if err := store.AppendHistory(ctx, entry); err != nil {
			t.Fatalf("AppendHistory %d: %v", i, err)
		}
	}

	entries, err := store.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("retained = %d, want 5", len(entries))
	}
	if entries[0].Detail != "run 7" {
		t.Fatalf("newest = %q, want run 7", entries[0].Detail)
	}
	if entries[4].Detail != "run 3" {
		t.Fatalf("oldest = %q, want run 3", entries[4].Detail)
	}
}

func TestSecondOpenFailsWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := library.Open(cfg); err != library.ErrLocked {
		t.Fatalf("second open err = %v, want ErrLocked", err)
	}
}
