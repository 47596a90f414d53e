// Package checkout builds Lemon Squeezy checkout URLs for the paid
// plans. Each plan and billing interval maps to a hosted storefront
// variant; enterprise has no variant and goes through sales.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"shoplens/internal/credits"
)

// Billing selects the payment interval.
type Billing string

const (
	BillingMonthly Billing = "monthly"
	BillingYearly  Billing = "yearly"
)

// ParseBilling normalizes a billing interval.
func ParseBilling(value string) (Billing, error) {
	switch Billing(strings.ToLower(strings.TrimSpace(value))) {
	case BillingMonthly, "":
		return BillingMonthly, nil
	case BillingYearly:
		return BillingYearly, nil
	default:
		return "", fmt.Errorf("billing: unsupported interval %q", value)
	}
}

// Hosted storefront variant ids, keyed by "<plan>_<billing>".
var variants = map[string]int{
	"starter_monthly":  1210536,
	"starter_yearly":   1210594,
	"pro_monthly":      1210603,
	"pro_yearly":       1210606,
	"business_monthly": 1210608,
	"business_yearly":  1210610,
}

// Request carries everything needed to build a checkout link.
type Request struct {
	PlanID     string
	Billing    Billing
	Email      string
	SuccessURL string
}

// Builder constructs checkout URLs for one storefront.
type Builder struct {
	storeDomain string
}

// NewBuilder builds checkout links against the given storefront
// domain, e.g. "shoplens.lemonsqueezy.com".
func NewBuilder(storeDomain string) *Builder {
	return &Builder{storeDomain: storeDomain}
}

// URL returns the hosted checkout link for a plan. Plans without a
// storefront variant (free, enterprise, unknown) return an error.
func (b *Builder) URL(req Request) (string, error) {
	plan, err := credits.PlanByID(req.PlanID)
	if err != nil {
		return "", err
	}
	if plan.Custom {
		return "", fmt.Errorf("plan %q has no self-service checkout, contact sales", plan.ID)
	}

	variantID, ok := variants[plan.ID+"_"+string(req.Billing)]
	if !ok {
		return "", fmt.Errorf("plan %q has no %s checkout variant", plan.ID, req.Billing)
	}

	params := url.Values{}
	if req.Email != "" {
		params.Set("checkout[email]", req.Email)
		params.Set("checkout[custom][user_email]", req.Email)
	}
	if req.SuccessURL != "" {
		params.Set("checkout[success_url]", req.SuccessURL)
	}

	checkoutURL := fmt.Sprintf("https://%s/checkout/buy/%d", b.storeDomain, variantID)
	if encoded := params.Encode(); encoded != "" {
		checkoutURL += "?" + encoded
	}
	return checkoutURL, nil
}
