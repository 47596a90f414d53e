package credits

import (
	"fmt"
	"math"
	"strings"
)

// Priority is the processing tier a plan grants.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityPriority Priority = "priority"
	PriorityHigh     Priority = "high"
	PriorityTop      Priority = "top"
)

// Plan describes one subscription tier. Enterprise carries no fixed
// numbers; its Custom flag marks every numeric field as negotiated.
type Plan struct {
	ID           string
	Name         string
	Credits      int
	PriceMonthly float64 // USD per month
	PriceYearly  float64 // USD per year
	Priority     Priority
	Popular      bool
	Custom       bool
}

// RetentionDiscount is the fraction taken off a retention offer.
const RetentionDiscount = 0.20

// PlanFree is the id every new account starts on.
const PlanFree = "free"

var plans = []Plan{
	{ID: PlanFree, Name: "Free Trial", Credits: 20, Priority: PriorityStandard},
	{ID: "starter", Name: "Starter", Credits: 100, PriceMonthly: 9, PriceYearly: 84, Priority: PriorityPriority},
	{ID: "pro", Name: "Pro", Credits: 400, PriceMonthly: 29, PriceYearly: 276, Priority: PriorityPriority, Popular: true},
	{ID: "business", Name: "Business", Credits: 1200, PriceMonthly: 79, PriceYearly: 756, Priority: PriorityHigh},
	{ID: "enterprise", Name: "Enterprise", Priority: PriorityTop, Custom: true},
}

// Plans returns the catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a plan by its identifier.
func PlanByID(id string) (Plan, error) {
	needle := strings.ToLower(strings.TrimSpace(id))
	for _, p := range plans {
		if p.ID == needle {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("plan: unknown id %q", id)
}

// RetentionPrice returns the discounted monthly price offered when a
// user tries to cancel. Plans without a price return zero.
func RetentionPrice(p Plan) float64 {
	if p.PriceMonthly == 0 {
		return 0
	}
	return math.Round(p.PriceMonthly*(1-RetentionDiscount)*100) / 100
}
