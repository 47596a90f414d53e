package credits

// Feature identifies a billable operation.
type Feature string

const (
	FeatureSEOAnalysis Feature = "seo_analysis"
	FeatureSEOContent  Feature = "seo_content"
	FeatureStudioShot  Feature = "studio_shot"
	FeatureRealLife    Feature = "real_life"
	FeatureHandsFree   Feature = "handsfree"
)

var costs = map[Feature]int{
	FeatureSEOAnalysis: 1,
	FeatureSEOContent:  2,
	FeatureStudioShot:  5,
	FeatureRealLife:    5,
	FeatureHandsFree:   8,
}

// Cost returns the credit price of a feature. Unknown features cost
// nothing, so new feature flags degrade to free rather than blocking.
func Cost(f Feature) int {
	return costs[f]
}

// CanAfford reports whether a balance covers a feature.
func CanAfford(balance int, f Feature) bool {
	return balance >= Cost(f)
}

// Deduct subtracts a feature's cost from a balance, clamping at zero.
func Deduct(balance int, f Feature) int {
	next := balance - Cost(f)
	if next < 0 {
		return 0
	}
	return next
}
