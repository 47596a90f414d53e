package credits_test

import (
	"context"
	"testing"

	"shoplens/internal/credits"
)

type memStore struct {
	sub   credits.Subscription
	found bool
	saves int
}

func (m *memStore) Subscription(ctx context.Context) (credits.Subscription, bool, error) {
	return m.sub, m.found, nil
}

func (m *memStore) SaveSubscription(ctx context.Context, sub credits.Subscription) error {
	m.sub = sub
	m.found = true
	m.saves++
	return nil
}

func TestFreeTrialStartsWithTwentyCredits(t *testing.T) {
	store := &memStore{}
	ledger := credits.NewLedger(store, nil)

	sub, err := ledger.Current(context.Background(), "seller@example.com")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if sub.PlanID != credits.PlanFree {
		t.Fatalf("plan = %q, want free", sub.PlanID)
	}
	if sub.Credits != 20 {
		t.Fatalf("credits = %d, want 20", sub.Credits)
	}
	if !sub.TrialUsed {
		t.Fatal("trial should be marked used on initialization")
	}
	if !sub.ExpiresAt.IsZero() {
		t.Fatalf("trial ExpiresAt = %v, want zero (trial credits never expire)", sub.ExpiresAt)
	}
	if sub.Expired(sub.StartedAt.AddDate(0, 6, 0)) {
		t.Fatal("trial must never report expired")
	}
}

func TestChargeStudioShotFromTrial(t *testing.T) {
	store := &memStore{}
	ledger := credits.NewLedger(store, nil)
	ctx := context.Background()

	result, err := ledger.Charge(ctx, "seller@example.com", credits.FeatureStudioShot)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if !result.OK {
		t.Fatal("charge should succeed on a fresh trial")
	}
	if result.Balance != 15 {
		t.Fatalf("balance = %d, want 15", result.Balance)
	}
	if store.sub.CreditsUsed != 5 {
		t.Fatalf("credits used = %d, want 5", store.sub.CreditsUsed)
	}
}

func TestChargeInsufficientBalanceDoesNotMutate(t *testing.T) {
	store := &memStore{
		sub:   credits.Subscription{Email: "seller@example.com", PlanID: "starter", Credits: 3},
		found: true,
	}
	ledger := credits.NewLedger(store, nil)

	result, err := ledger.Charge(context.Background(), "seller@example.com", credits.FeatureHandsFree)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if result.OK {
		t.Fatal("charge should fail with 3 credits against cost 8")
	}
	if result.Needed != 8 || result.Shortfall != 5 {
		t.Fatalf("needed/shortfall = %d/%d, want 8/5", result.Needed, result.Shortfall)
	}
	if !result.NeedUpgrade {
		t.Fatal("expected upgrade flag on failed charge")
	}
	if store.sub.Credits != 3 || store.saves != 0 {
		t.Fatal("failed charge must not mutate the record")
	}
}

func TestAdminBypassesCharging(t *testing.T) {
	store := &memStore{}
	ledger := credits.NewLedger(store, []string{"Admin@Example.com"})

	result, err := ledger.Charge(context.Background(), "admin@example.com", credits.FeatureHandsFree)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if !result.OK {
		t.Fatal("admin charge should succeed")
	}
	if store.saves != 0 {
		t.Fatal("admin charge must not touch the store")
	}
}

func TestUpgradeReplacesRecord(t *testing.T) {
	store := &memStore{
		sub: credits.Subscription{
			Email:       "seller@example.com",
			PlanID:      credits.PlanFree,
			Credits:     2,
			CreditsUsed: 18,
			TrialUsed:   true,
		},
		found: true,
	}
	ledger := credits.NewLedger(store, nil)

	sub, err := ledger.Upgrade(context.Background(), "seller@example.com", "pro", false)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if sub.PlanID != "pro" || sub.Credits != 400 {
		t.Fatalf("plan/credits = %s/%d, want pro/400", sub.PlanID, sub.Credits)
	}
	if sub.CreditsUsed != 0 {
		t.Fatal("monthly usage must reset on upgrade")
	}
	if !sub.TrialUsed {
		t.Fatal("trial flag must survive upgrades")
	}
	wantExpiry := sub.StartedAt.AddDate(0, 1, 0)
	if !sub.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiry = %v, want one month out", sub.ExpiresAt)
	}
}

func TestUpgradeYearlyExtendsTwelveMonths(t *testing.T) {
	ledger := credits.NewLedger(&memStore{}, nil)

	sub, err := ledger.Upgrade(context.Background(), "seller@example.com", "starter", true)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	wantExpiry := sub.StartedAt.AddDate(0, 12, 0)
	if !sub.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiry = %v, want twelve months out", sub.ExpiresAt)
	}
}

func TestUpgradeRejectsEnterpriseAndUnknown(t *testing.T) {
	ledger := credits.NewLedger(&memStore{}, nil)
	ctx := context.Background()

	if _, err := ledger.Upgrade(ctx, "a@b.c", "enterprise", false); err == nil {
		t.Fatal("enterprise should not be self-service")
	}
	if _, err := ledger.Upgrade(ctx, "a@b.c", "platinum", false); err == nil {
		t.Fatal("unknown plan should fail")
	}
}

func TestAddCredits(t *testing.T) {
	store := &memStore{}
	ledger := credits.NewLedger(store, nil)
	ctx := context.Background()

	sub, err := ledger.AddCredits(ctx, "seller@example.com", 50)
	if err != nil {
		t.Fatalf("AddCredits: %v", err)
	}
	if sub.Credits != 70 {
		t.Fatalf("credits = %d, want 70", sub.Credits)
	}
	if _, err := ledger.AddCredits(ctx, "seller@example.com", 0); err == nil {
		t.Fatal("zero amount should fail")
	}
}

func TestCostTable(t *testing.T) {
	cases := []struct {
		feature credits.Feature
		want    int
	}{
		{credits.FeatureSEOAnalysis, 1},
		{credits.FeatureSEOContent, 2},
		{credits.FeatureStudioShot, 5},
		{credits.FeatureRealLife, 5},
		{credits.FeatureHandsFree, 8},
		{credits.Feature("future_thing"), 0},
	}
	for _, tc := range cases {
		if got := credits.Cost(tc.feature); got != tc.want {
			t.Errorf("Cost(%s) = %d, want %d", tc.feature, got, tc.want)
		}
	}
}

func TestDeductClampsAtZero(t *testing.T) {
	if got := credits.Deduct(3, credits.FeatureStudioShot); got != 0 {
		t.Fatalf("Deduct = %d, want 0", got)
	}
}

func TestRetentionPrice(t *testing.T) {
	pro, err := credits.PlanByID("pro")
	if err != nil {
		t.Fatalf("PlanByID: %v", err)
	}
	if got := credits.RetentionPrice(pro); got != 23.2 {
		t.Fatalf("retention price = %v, want 23.2", got)
	}
	free, _ := credits.PlanByID("free")
	if got := credits.RetentionPrice(free); got != 0 {
		t.Fatalf("free retention price = %v, want 0", got)
	}
}
