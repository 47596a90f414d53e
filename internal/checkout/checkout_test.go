package checkout_test

import (
	"net/url"
	"strings"
	"testing"

	"shoplens/internal/checkout"
)

func TestURLForStarterMonthly(t *testing.T) {
	builder := checkout.NewBuilder("shoplens.lemonsqueezy.com")

	got, err := builder.URL(checkout.Request{
		PlanID:     "starter",
		Billing:    checkout.BillingMonthly,
		Email:      "seller@example.com",
		SuccessURL: "https://shoplens.app/?payment=success",
	})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasPrefix(got, "https://shoplens.lemonsqueezy.com/checkout/buy/1210536?") {
		t.Fatalf("url = %s", got)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	query := parsed.Query()
	if query.Get("checkout[email]") != "seller@example.com" {
		t.Fatalf("email param = %q", query.Get("checkout[email]"))
	}
	if query.Get("checkout[success_url]") != "https://shoplens.app/?payment=success" {
		t.Fatalf("success url param = %q", query.Get("checkout[success_url]"))
	}
}

func TestURLYearlyVariant(t *testing.T) {
	builder := checkout.NewBuilder("shoplens.lemonsqueezy.com")

	got, err := builder.URL(checkout.Request{PlanID: "pro", Billing: checkout.BillingYearly})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "https://shoplens.lemonsqueezy.com/checkout/buy/1210606" {
		t.Fatalf("url = %s", got)
	}
}

func TestURLRejectsPlansWithoutVariants(t *testing.T) {
	builder := checkout.NewBuilder("shoplens.lemonsqueezy.com")

	for _, planID := range []string{"enterprise", "free", "platinum"} {
		if _, err := builder.URL(checkout.Request{PlanID: planID, Billing: checkout.BillingMonthly}); err == nil {
			t.Errorf("expected error for plan %q", planID)
		}
	}
}

func TestParseBilling(t *testing.T) {
	if b, err := checkout.ParseBilling(""); err != nil || b != checkout.BillingMonthly {
		t.Fatalf("empty billing = %v, %v", b, err)
	}
	if b, err := checkout.ParseBilling(" Yearly "); err != nil || b != checkout.BillingYearly {
		t.Fatalf("yearly billing = %v, %v", b, err)
	}
	if _, err := checkout.ParseBilling("weekly"); err == nil {
		t.Fatal("expected error for weekly")
	}
}
