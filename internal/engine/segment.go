package engine

// Segment is one of six mutually exclusive behavioral labels.
type Segment string

const (
	SegmentVIP         Segment = "VIP"
	SegmentLoyalStable Segment = "LOYAL_STABLE"
	SegmentAtRisk      Segment = "AT_RISK"
	SegmentNew         Segment = "NEW"
	SegmentDormant     Segment = "DORMANT"
	SegmentLight       Segment = "LIGHT"
)

// Segment thresholds. The 60-day dormancy here is deliberately slower than
// the action engine's 21-day rule: the segment is a stable label while the
// action engine wants to intervene well before a fan goes fully dormant.
const (
	newSegmentWindowDays    = 7
	dormantSegmentAfterDays = 60
	vipMinValue             = 200.0
	vipMinScore             = 50
	atRiskExpiryWindow      = 3
	loyalMinValue           = 50.0
	loyalMinScore           = 60
)

// SegmentFor classifies a relationship. The cascade is evaluated top-down
// and the first matching rule wins, so the result is always exactly one
// label. An unknown last interaction counts as "never interacted": it can
// make a paying fan DORMANT but can never make a fan NEW.
func SegmentFor(s Snapshot, score int) Segment {
	interaction := s.DaysSinceLastInteraction()

	if s.LifetimeValue == 0 && interaction != nil && *interaction <= newSegmentWindowDays {
		return SegmentNew
	}
	if s.LifetimeValue > 0 && (interaction == nil || *interaction > dormantSegmentAfterDays) {
		return SegmentDormant
	}
	if s.LifetimeValue >= vipMinValue && score >= vipMinScore {
		return SegmentVIP
	}
	if (s.HasActiveGrant && s.DaysToExpiry != nil && *s.DaysToExpiry <= atRiskExpiryWindow) ||
		(score <= highRiskMaxScore && s.LifetimeValue > 0) {
		return SegmentAtRisk
	}
	if s.LifetimeValue >= loyalMinValue && score >= loyalMinScore {
		return SegmentLoyalStable
	}
	return SegmentLight
}
