package engine

// Sub-score caps. The four components sum to at most 100.
const (
	maxChatRecencyScore     = 30
	maxPurchaseRecencyScore = 30
	maxValueTierScore       = 20
	maxExpiryScore          = 20
)

// HealthScore folds recency, value, and expiry proximity into a single
// 0-100 integer. Missing recency evidence contributes zero points rather
// than being coerced to a stale or fresh date.
func HealthScore(s Snapshot) int {
	score := chatRecencyScore(s.DaysSinceLastMessage) +
		purchaseRecencyScore(s.DaysSinceLastPurchase) +
		valueTierScore(s.LifetimeValue) +
		expiryProximityScore(s)
	return clampScore(score)
}

// chatRecencyScore: nil days means no visible message ever, worth nothing.
func chatRecencyScore(days *int) int {
	if days == nil {
		return 0
	}
	switch {
	case *days <= 1:
		return 30
	case *days <= 3:
		return 20
	case *days <= 7:
		return 10
	default:
		return 0
	}
}

// purchaseRecencyScore: any purchase history at all is worth at least 10;
// nil means the fan has never bought anything.
func purchaseRecencyScore(days *int) int {
	if days == nil {
		return 0
	}
	switch {
	case *days <= 7:
		return 30
	case *days <= 30:
		return 20
	default:
		return 10
	}
}

func valueTierScore(lifetimeValue float64) int {
	switch {
	case lifetimeValue >= 100:
		return 20
	case lifetimeValue >= 30:
		return 10
	case lifetimeValue > 0:
		return 5
	default:
		return 0
	}
}

// expiryProximityScore rewards runway on a renewable subscription. It only
// applies while an active monthly or special grant exists and the expiry
// horizon is known.
func expiryProximityScore(s Snapshot) int {
	if !s.HasActiveSubscription || s.DaysToExpiry == nil {
		return 0
	}
	d := *s.DaysToExpiry
	switch {
	case d > 7:
		return 20
	case d >= 3:
		return 10
	case d >= 1:
		return 5
	default:
		return 0
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
