package engine

// Action is the fine-grained next-best-action id.
type Action string

const (
	ActionRenewHard     Action = "RENEW_HARD"
	ActionRenewSoft     Action = "RENEW_SOFT"
	ActionRecoverTopFan Action = "RECOVER_TOP_FAN"
	ActionFirstWelcome  Action = "FIRST_WELCOME"
	ActionFirstExtra    Action = "FIRST_EXTRA"
	ActionWakeDormant   Action = "WAKE_DORMANT"
	ActionNeutral       Action = "NEUTRAL"
)

// CoarseAction is the external display category an Action collapses into.
type CoarseAction string

const (
	CoarseRenewPack         CoarseAction = "RENEW_PACK"
	CoarseCareVIP           CoarseAction = "CARE_VIP"
	CoarseWelcome           CoarseAction = "WELCOME"
	CoarseReactivateDormant CoarseAction = "REACTIVATE_DORMANT"
	CoarseOfferExtra        CoarseAction = "OFFER_EXTRA"
	CoarseNeutral           CoarseAction = "NEUTRAL"
)

// Decision thresholds. The 21-day dormancy here intervenes earlier than the
// segment classifier's 60-day label on purpose: by the time a fan reads as
// DORMANT the wake-up message is already late.
const (
	renewHardWindow        = 3
	renewSoftWindow        = 7
	topFanMinExtraSpend    = 150.0
	dormantActionAfterDays = 21
)

// DecisionContext carries exactly the facts the cascade consults.
type DecisionContext struct {
	HasActiveSubscription    bool
	DaysToExpiry             *int
	IsNewFan                 bool
	DaysSinceLastInteraction *int
	LifetimeExtraSpend       float64
}

// DecisionContextFrom projects a Snapshot onto the decision inputs.
func DecisionContextFrom(s Snapshot) DecisionContext {
	return DecisionContext{
		HasActiveSubscription:    s.HasActiveSubscription,
		DaysToExpiry:             s.DaysToExpiry,
		IsNewFan:                 s.IsNew,
		DaysSinceLastInteraction: s.DaysSinceLastInteraction(),
		LifetimeExtraSpend:       s.LifetimeExtraSpend,
	}
}

// Dormant applies the 21-day no-contact rule. A fan with no recorded
// interaction at all is dormant.
func (c DecisionContext) Dormant() bool {
	return c.DaysSinceLastInteraction == nil || *c.DaysSinceLastInteraction > dormantActionAfterDays
}

// Decide runs the ordered rule cascade and returns exactly one action.
// Subscription urgency outranks everything else, including top-fan recovery.
func Decide(c DecisionContext) Action {
	dte := c.DaysToExpiry
	switch {
	case c.HasActiveSubscription && dte != nil && *dte <= renewHardWindow:
		return ActionRenewHard
	case c.HasActiveSubscription && dte != nil && *dte <= renewSoftWindow:
		return ActionRenewSoft
	case !c.HasActiveSubscription && c.LifetimeExtraSpend >= topFanMinExtraSpend && !c.Dormant():
		return ActionRecoverTopFan
	case c.IsNewFan:
		return ActionFirstWelcome
	case c.HasActiveSubscription && c.LifetimeExtraSpend == 0 && !c.Dormant():
		return ActionFirstExtra
	case c.Dormant():
		return ActionWakeDormant
	default:
		return ActionNeutral
	}
}

// ActionCopy is the static creator-facing copy for one action id.
type ActionCopy struct {
	Label       string
	Rationale   string
	Suggestions []string
	Focus       string
}

// actionCopyTable resolves every action id to its display copy. Suggestion
// strings may contain {name} placeholders interpolated by the caller.
var actionCopyTable = map[Action]ActionCopy{
	ActionRenewHard: {
		Label:     "Renewal closing now",
		Rationale: "Their subscription runs out within days; a renewal nudge today decides whether they stay.",
		Suggestions: []string{
			"Hey {name}, your access ends in a couple of days — want me to set you up for next month?",
			"{name}, don't lose the streak! Renewing now keeps everything unlocked.",
			"I put something special aside for renewing fans this week, {name}.",
		},
		Focus: "renew",
	},
	ActionRenewSoft: {
		Label:     "Renewal coming up",
		Rationale: "The subscription expires within the week; a soft reminder now avoids a last-minute scramble.",
		Suggestions: []string{
			"Just so you know {name}, your month wraps up soon — I'd love to keep you around.",
			"Next month is going to be fun, {name}. Staying on?",
		},
		Focus: "renew",
	},
	ActionRecoverTopFan: {
		Label:     "Win back a top spender",
		Rationale: "They have spent heavily on extras but currently hold no subscription; they are warm and worth a direct offer.",
		Suggestions: []string{
			"{name}, I miss having you in the inner circle — want back in?",
			"Made something I think you'd love, {name}. First look is yours.",
			"You've always had great taste, {name}. New drop this week.",
		},
		Focus: "offer",
	},
	ActionFirstWelcome: {
		Label:     "Send a first welcome",
		Rationale: "A brand-new fan converts best inside the first days; a personal welcome sets the tone.",
		Suggestions: []string{
			"Welcome in, {name}! Tell me what you're hoping to see.",
			"So glad you're here, {name} — here's a little tour of what I post.",
		},
		Focus: "welcome",
	},
	ActionFirstExtra: {
		Label:     "Pitch a first extra",
		Rationale: "An active subscriber who has never bought an extra is the easiest first-purchase conversion there is.",
		Suggestions: []string{
			"{name}, since you're subscribed — want a peek at the extras most fans start with?",
			"I think you'd really like this one, {name}. It's a favorite.",
		},
		Focus: "offer",
	},
	ActionWakeDormant: {
		Label:     "Wake a quiet fan",
		Rationale: "Three weeks without contact; a light personal message is the cheapest reactivation there is.",
		Suggestions: []string{
			"Been a while, {name}! Thought of you today.",
			"{name}, you missed a few things — want a recap?",
		},
		Focus: "message",
	},
	ActionNeutral: {
		Label:     "No action needed",
		Rationale: "Nothing urgent here; keep the relationship warm at its own pace.",
		Suggestions: []string{
			"Drop a casual check-in when you have a moment.",
		},
		Focus: "none",
	},
}

// CopyFor returns the display copy for an action. Unknown ids fall back to
// the neutral copy so a caller can never render an empty card.
func CopyFor(a Action) ActionCopy {
	if c, ok := actionCopyTable[a]; ok {
		return c
	}
	return actionCopyTable[ActionNeutral]
}

// CoarseActionFor collapses the seven fine-grained ids into the six external
// display categories. The mapping is total: both renewal urgencies collapse
// to RENEW_PACK, both extra-selling actions to OFFER_EXTRA, and anything
// unrecognized lands on NEUTRAL. CARE_VIP is a valid external category that
// no fine-grained id currently produces; it is reserved for manually curated
// queues.
func CoarseActionFor(a Action) CoarseAction {
	switch a {
	case ActionRenewHard, ActionRenewSoft:
		return CoarseRenewPack
	case ActionRecoverTopFan, ActionFirstExtra:
		return CoarseOfferExtra
	case ActionFirstWelcome:
		return CoarseWelcome
	case ActionWakeDormant:
		return CoarseReactivateDormant
	case ActionNeutral:
		return CoarseNeutral
	default:
		return CoarseNeutral
	}
}
