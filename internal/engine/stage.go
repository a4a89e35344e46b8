package engine

// Stage is the coarse lifecycle phase used to pick tone.
type Stage string

const (
	StageNew     Stage = "NEW"
	StageWarming Stage = "WARMING"
	StageLoyal   Stage = "LOYAL"
	StageRisk    Stage = "RISK"
)

// Tone is the suggested communication register for the next message.
type Tone string

const (
	ToneClose   Tone = "CLOSE"
	ToneDirect  Tone = "DIRECT"
	TonePlayful Tone = "PLAYFUL"
	ToneSerious Tone = "SERIOUS"
)

const (
	loyalStageMinScore = 75
	loyalStageMinSpend = 50.0
	playfulMinScore    = 70
)

// StageFor derives the lifecycle phase from the classifiers that ran before
// it. Risk always dominates: a HIGH-risk VIP is in the RISK stage.
func StageFor(s Snapshot, score int, segment Segment, risk Risk) Stage {
	if risk == RiskHigh || score <= highRiskMaxScore ||
		(s.HasActiveGrant && s.DaysToExpiry != nil && *s.DaysToExpiry <= expiryRiskWindow) {
		return StageRisk
	}
	if s.IsNew || segment == SegmentNew {
		return StageNew
	}
	if segment == SegmentVIP || segment == SegmentLoyalStable ||
		score >= loyalStageMinScore || s.LifetimeValue >= vipMinValue ||
		s.Recent30dSpend >= loyalStageMinSpend {
		return StageLoyal
	}
	return StageWarming
}

// ToneFor picks the register to write in.
func ToneFor(s Snapshot, score int, segment Segment, stage Stage) Tone {
	if stage == StageRisk || segment == SegmentAtRisk {
		return ToneDirect
	}
	if stage == StageNew {
		return ToneClose
	}
	if segment == SegmentVIP || score >= playfulMinScore || s.LifetimeValue >= vipMinValue {
		return TonePlayful
	}
	return ToneSerious
}

type hintKey struct {
	stage          Stage
	tone           Tone
	hasRecentSpend bool
}

// Advisory one-liners shown next to the suggested tone. Purely informative;
// nothing downstream branches on them.
var hintTable = map[hintKey]string{
	{StageRisk, ToneDirect, true}:     "They spent recently but are slipping. Be direct about what they get by staying.",
	{StageRisk, ToneDirect, false}:    "No recent spend and high risk. Skip small talk, lead with a concrete reason to come back.",
	{StageNew, ToneClose, true}:       "New and already spending. Keep it warm and personal, learn what they liked.",
	{StageNew, ToneClose, false}:      "Brand new and still browsing. A personal welcome goes further than an offer.",
	{StageLoyal, TonePlayful, true}:   "A regular in a good mood. Playful banter keeps the habit alive.",
	{StageLoyal, TonePlayful, false}:  "Loyal but quiet this month. Tease something new without pushing a sale.",
	{StageLoyal, ToneSerious, true}:   "Steady supporter. Acknowledge their loyalty before anything else.",
	{StageLoyal, ToneSerious, false}:  "Long-time fan between purchases. Check in without an ask.",
	{StageWarming, ToneSerious, true}: "Warming up and spending a little. Reward the momentum with attention.",
	{StageWarming, TonePlayful, true}: "Engaged and light-hearted. Match their energy.",
}

const defaultHint = "Keep the conversation going at their pace."

// HintFor returns the advisory hint for a (stage, tone, spend) combination,
// falling back to a neutral line for combinations without dedicated copy.
func HintFor(stage Stage, tone Tone, hasRecentSpend bool) string {
	if h, ok := hintTable[hintKey{stage, tone, hasRecentSpend}]; ok {
		return h
	}
	return defaultHint
}
