package credits

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Subscription is the persisted account record. A whole record is
// replaced on plan change so stale fields from the previous plan never
// survive an upgrade.
type Subscription struct {
	Email       string    `json:"email"`
	PlanID      string    `json:"planId"`
	Credits     int       `json:"credits"`
	CreditsUsed int       `json:"creditsUsedThisMonth"`
	Yearly      bool      `json:"yearly"`
	TrialUsed   bool      `json:"isTrialUsed"`
	StartedAt   time.Time `json:"startedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the paid period has lapsed. The expiry is
// informational; features keep working on remaining credits.
func (s Subscription) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SubscriptionStore persists the account record.
type SubscriptionStore interface {
	Subscription(ctx context.Context) (Subscription, bool, error)
	SaveSubscription(ctx context.Context, sub Subscription) error
}

// ChargeResult reports the outcome of a charge attempt.
type ChargeResult struct {
	OK          bool
	Feature     Feature
	Needed      int
	Balance     int // balance after a successful charge, before on failure
	Shortfall   int
	NeedUpgrade bool
}

// Ledger meters feature usage against the stored subscription.
type Ledger struct {
	store SubscriptionStore

	// admins use features without charges.
	admins map[string]struct{}
}

// NewLedger builds a ledger over a subscription store. Admin emails
// bypass all charging.
func NewLedger(store SubscriptionStore, adminEmails []string) *Ledger {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Ledger{store: store, admins: admins}
}

// Unlimited reports whether an email is exempt from charging.
func (l *Ledger) Unlimited(email string) bool {
	_, ok := l.admins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Current returns the subscription record, starting the free trial on
// first access.
func (l *Ledger) Current(ctx context.Context, email string) (Subscription, error) {
	sub, found, err := l.store.Subscription(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("load subscription: %w", err)
	}
	if found {
		return sub, nil
	}

	// Trial credits never expire; ExpiresAt stays zero until a paid
	// plan sets a renewal date.
	plan, _ := PlanByID(PlanFree)
	sub = Subscription{
		Email:     email,
		PlanID:    plan.ID,
		Credits:   plan.Credits,
		TrialUsed: true,
		StartedAt: time.Now(),
	}
	if err := l.store.SaveSubscription(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("initialize free trial: %w", err)
	}
	return sub, nil
}

// Charge attempts to spend the credits a feature costs. On an
// insufficient balance it reports the shortfall and leaves the record
// untouched. Admin accounts always succeed without mutation.
func (l *Ledger) Charge(ctx context.Context, email string, feature Feature) (ChargeResult, error) {
	needed := Cost(feature)
	result := ChargeResult{Feature: feature, Needed: needed}

	if l.Unlimited(email) {
		result.OK = true
		return result, nil
	}

	sub, err := l.Current(ctx, email)
	if err != nil {
		return result, err
	}
	result.Balance = sub.Credits

	if !CanAfford(sub.Credits, feature) {
		result.Shortfall = needed - sub.Credits
		result.NeedUpgrade = true
		return result, nil
	}

	sub.Credits = Deduct(sub.Credits, feature)
	sub.CreditsUsed += needed
	if err := l.store.SaveSubscription(ctx, sub); err != nil {
		return result, fmt.Errorf("save subscription: %w", err)
	}
	result.OK = true
	result.Balance = sub.Credits
	return result, nil
}

// Upgrade replaces the subscription with a fresh record for the plan.
// The monthly usage counter resets and the expiry restarts from now.
func (l *Ledger) Upgrade(ctx context.Context, email, planID string, yearly bool) (Subscription, error) {
	plan, err := PlanByID(planID)
	if err != nil {
		return Subscription{}, err
	}
	if plan.Custom {
		return Subscription{}, fmt.Errorf("plan %q requires a sales contact, not self-service upgrade", plan.ID)
	}

	prev, _ := l.Current(ctx, email)
	now := time.Now()
	months := 1
	if yearly {
		months = 12
	}
	sub := Subscription{
		Email:     email,
		PlanID:    plan.ID,
		Credits:   plan.Credits,
		Yearly:    yearly,
		TrialUsed: prev.TrialUsed || prev.PlanID != "",
		StartedAt: now,
		ExpiresAt: now.AddDate(0, months, 0),
	}
	if err := l.store.SaveSubscription(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}

// AddCredits grants extra credits with no cap.
func (l *Ledger) AddCredits(ctx context.Context, email string, amount int) (Subscription, error) {
	if amount <= 0 {
		return Subscription{}, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	sub, err := l.Current(ctx, email)
	if err != nil {
		return Subscription{}, err
	}
	sub.Credits += amount
	if err := l.store.SaveSubscription(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}
