package engine

// Risk is the churn-risk estimate for one relationship.
type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

const (
	highRiskMaxScore   = 39
	mediumRiskMaxScore = 74
	expiryRiskWindow   = 7
)

// RiskFor maps a health score to a risk level. An active grant expiring
// within expiryRiskWindow days raises risk to at least MEDIUM; the override
// can only raise risk, never lower an existing HIGH.
func RiskFor(score int, hasActiveGrant bool, daysToExpiry *int) Risk {
	risk := RiskLow
	switch {
	case score <= highRiskMaxScore:
		risk = RiskHigh
	case score <= mediumRiskMaxScore:
		risk = RiskMedium
	}
	if risk == RiskLow && hasActiveGrant && daysToExpiry != nil && *daysToExpiry <= expiryRiskWindow {
		risk = RiskMedium
	}
	return risk
}
