package engine

import "github.com/fanpulse/fanpulse/internal/model"

// ProfileBucket keys the first narrative line.
type ProfileBucket string

const (
	ProfileNewTrial   ProfileBucket = "new-trial"
	ProfileNewEngaged ProfileBucket = "new-engaged"
	ProfileVIPCore    ProfileBucket = "vip-core"
	ProfileLoyal      ProfileBucket = "loyal"
	ProfileAtRisk     ProfileBucket = "at-risk"
	ProfileDefault    ProfileBucket = "default"
)

// recentBucket keys the second narrative line.
type recentBucket string

const (
	recentChatting  recentBucket = "chatting"
	recentBuying    recentBucket = "buying"
	recentQuiet     recentBucket = "quiet"
	recentNoHistory recentBucket = "no-history"
)

// ProfileBucketFor derives the profile bucket for the narrative. Risk wins
// over everything; new fans split on whether they are still on a trial or
// welcome entitlement.
func ProfileBucketFor(s Snapshot, segment Segment, stage Stage) ProfileBucket {
	switch {
	case segment == SegmentAtRisk || stage == StageRisk:
		return ProfileAtRisk
	case segment == SegmentVIP:
		return ProfileVIPCore
	case (s.IsNew || segment == SegmentNew) && s.HasActiveTrialOrWelcome:
		return ProfileNewTrial
	case s.IsNew || segment == SegmentNew:
		return ProfileNewEngaged
	case segment == SegmentLoyalStable || stage == StageLoyal:
		return ProfileLoyal
	default:
		return ProfileDefault
	}
}

func recentBucketFor(s Snapshot) recentBucket {
	if s.DaysSinceLastPurchase != nil && *s.DaysSinceLastPurchase <= 7 {
		return recentBuying
	}
	if s.DaysSinceLastMessage != nil && *s.DaysSinceLastMessage <= 3 {
		return recentChatting
	}
	if s.DaysSinceLastMessage == nil && s.DaysSinceLastPurchase == nil {
		return recentNoHistory
	}
	return recentQuiet
}

var profileCopy = map[ProfileBucket]string{
	ProfileNewTrial:   "New fan on a trial pass, still deciding whether to stick around.",
	ProfileNewEngaged: "New fan who is already engaging; the first impression window is open.",
	ProfileVIPCore:    "Core VIP: one of the highest-value relationships on the roster.",
	ProfileLoyal:      "Reliable long-term supporter with a steady history.",
	ProfileAtRisk:     "Relationship under strain; churn is a real possibility right now.",
	ProfileDefault:    "Casual fan with light, occasional activity.",
}

var recentCopy = map[recentBucket]string{
	recentBuying:    "Bought something within the last week.",
	recentChatting:  "Active in chat over the last few days.",
	recentQuiet:     "No meaningful activity recently.",
	recentNoHistory: "No recorded activity yet.",
}

var opportunityCopy = map[CoarseAction]string{
	CoarseRenewPack:         "Lock in the renewal before access lapses.",
	CoarseCareVIP:           "Invest personal attention; this fan carries the month.",
	CoarseWelcome:           "Make the welcome personal while they are still new.",
	CoarseReactivateDormant: "A light personal message could bring them back.",
	CoarseOfferExtra:        "Well positioned for an extra offer.",
	CoarseNeutral:           "Keep the relationship warm; nothing urgent.",
}

// NarrativeFor assembles the three-line summary from the static copy tables.
func NarrativeFor(s Snapshot, segment Segment, stage Stage, coarse CoarseAction) model.Narrative {
	profile, ok := profileCopy[ProfileBucketFor(s, segment, stage)]
	if !ok {
		profile = profileCopy[ProfileDefault]
	}
	recent, ok := recentCopy[recentBucketFor(s)]
	if !ok {
		recent = recentCopy[recentQuiet]
	}
	opportunity, ok := opportunityCopy[coarse]
	if !ok {
		opportunity = opportunityCopy[CoarseNeutral]
	}
	return model.Narrative{Profile: profile, Recent: recent, Opportunity: opportunity}
}
