package model

import "time"

// Grant types. Monthly and special grants are the renewable subscriptions;
// trial/welcome/single are one-shot entitlements.
const (
	GrantTrial   = "trial"
	GrantWelcome = "welcome"
	GrantMonthly = "monthly"
	GrantSpecial = "special"
	GrantSingle  = "single"
)

// Message audiences. Internal notes are never visible to the fan and do not
// count toward recency.
const (
	AudienceFan      = "FAN"
	AudienceCreator  = "CREATOR"
	AudienceInternal = "INTERNAL"
)

// Fan is one paid relationship owned by a creator.
type Fan struct {
	FanID          string     `json:"fanId"`
	CreatorID      string     `json:"creatorId"`
	DisplayName    string     `json:"displayName"`
	LifetimeValue  float64    `json:"lifetimeValue"`
	Recent30dSpend float64    `json:"recent30dSpend"`
	IsNew          bool       `json:"isNew"`
	Archived       bool       `json:"archived"`
	Blocked        bool       `json:"blocked"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	CreationTime   time.Time  `json:"creationTime"`

	// Cached derived state, refreshed best-effort after each evaluation.
	HealthScore *int    `json:"healthScore,omitempty"`
	Segment     *string `json:"segment,omitempty"`
	RiskLevel   *string `json:"riskLevel,omitempty"`

	// Recency anchors. Nullable: absence means no evidence, not "epoch".
	LastMessageAt        *time.Time `json:"lastMessageAt,omitempty"`
	LastCreatorMessageAt *time.Time `json:"lastCreatorMessageAt,omitempty"`
	LastPurchaseAt       *time.Time `json:"lastPurchaseAt,omitempty"`
}

// AccessGrant is a time-bounded entitlement. Active means ExpiresAt > now.
type AccessGrant struct {
	GrantID   string    `json:"grantId"`
	FanID     string    `json:"fanId"`
	CreatorID string    `json:"creatorId"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Active reports whether the grant entitlement is still running at t.
func (g AccessGrant) Active(t time.Time) bool { return g.ExpiresAt.After(t) }

// Purchase is a one-off paid item outside the subscription. Only
// kind="extra", amount>0, non-archived purchases count toward lifetime
// extra spend.
type Purchase struct {
	PurchaseID string    `json:"purchaseId"`
	FanID      string    `json:"fanId"`
	CreatorID  string    `json:"creatorId"`
	Amount     float64   `json:"amount"`
	Tier       string    `json:"tier"`
	Kind       string    `json:"kind"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Purchase kinds.
const (
	PurchaseExtra = "extra"
	PurchaseTip   = "tip"
	PurchaseGift  = "gift"
)

// CountsAsExtra reports whether the purchase counts toward lifetime extra spend.
func (p Purchase) CountsAsExtra() bool {
	return p.Kind == PurchaseExtra && p.Amount > 0 && !p.Archived
}

// Message is one chat message in a relationship.
type Message struct {
	MessageID string    `json:"messageId"`
	FanID     string    `json:"fanId"`
	CreatorID string    `json:"creatorId"`
	Sender    string    `json:"sender"` // fan | creator | other
	Audience  string    `json:"audience"`
	SentAt    time.Time `json:"sentAt"`
}

// VisibleToFan reports whether the message counts toward recency.
// INTERNAL-only system notes are excluded.
func (m Message) VisibleToFan() bool {
	return m.Audience == AudienceFan || m.Audience == AudienceCreator
}

// FanNote is a freeform creator note. Only the most recent note is consulted.
type FanNote struct {
	NoteID    string    `json:"noteId"`
	FanID     string    `json:"fanId"`
	CreatorID string    `json:"creatorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MonetizationSummary is the monetary rollup attached to a fan summary.
type MonetizationSummary struct {
	SubscriptionActive   bool       `json:"subscriptionActive"`
	SubscriptionPrice    float64    `json:"subscriptionPrice"`
	SubscriptionDaysLeft *int       `json:"subscriptionDaysLeft,omitempty"`
	ExtrasCount          int        `json:"extrasCount"`
	ExtrasTotal          float64    `json:"extrasTotal"`
	TipsCount            int        `json:"tipsCount"`
	TipsTotal            float64    `json:"tipsTotal"`
	GiftsCount           int        `json:"giftsCount"`
	GiftsTotal           float64    `json:"giftsTotal"`
	TotalSpent           float64    `json:"totalSpent"`
	Recent30dSpent       float64    `json:"recent30dSpent"`
	LastPurchaseAt       *time.Time `json:"lastPurchaseAt,omitempty"`
}

// Narrative is the three-line creator-facing summary text.
type Narrative struct {
	Profile     string `json:"profile"`
	Recent      string `json:"recent"`
	Opportunity string `json:"opportunity"`
}

// ActionAdvice is the resolved next-best-action with its canned copy.
type ActionAdvice struct {
	Action       string   `json:"action" validate:"required"`
	CoarseAction string   `json:"coarseAction" validate:"required,oneof=RENEW_PACK CARE_VIP WELCOME REACTIVATE_DORMANT OFFER_EXTRA NEUTRAL"`
	Label        string   `json:"label"`
	Rationale    string   `json:"rationale"`
	Suggestions  []string `json:"suggestions"`
	Focus        string   `json:"focus"`
}

// FanSummary is the full per-relationship report.
type FanSummary struct {
	FanID          string  `json:"fanId" validate:"required"`
	CreatorID      string  `json:"creatorId" validate:"required"`
	DisplayName    string  `json:"displayName"`
	HealthScore    int     `json:"healthScore" validate:"min=0,max=100"`
	Segment        string  `json:"segment" validate:"oneof=VIP LOYAL_STABLE AT_RISK NEW DORMANT LIGHT"`
	RiskLevel      string  `json:"riskLevel" validate:"oneof=LOW MEDIUM HIGH"`
	Stage          string  `json:"stage" validate:"oneof=NEW WARMING LOYAL RISK"`
	Tone           string  `json:"tone" validate:"oneof=CLOSE DIRECT PLAYFUL SERIOUS"`
	Hint           string  `json:"hint"`
	QueueRank      *int    `json:"queueRank,omitempty"`
	LifetimeValue  float64 `json:"lifetimeValue"`
	Recent30dSpend float64 `json:"recent30dSpend"`

	DaysSinceLastMessage  *int `json:"daysSinceLastMessage,omitempty"`
	DaysSinceLastPurchase *int `json:"daysSinceLastPurchase,omitempty"`
	DaysToExpiry          *int `json:"daysToExpiry,omitempty"`

	Advice       ActionAdvice        `json:"advice"`
	Monetization MonetizationSummary `json:"monetization"`
	Narrative    Narrative           `json:"narrative"`
	LatestNote   *FanNote            `json:"latestNote,omitempty"`
	GeneratedAt  time.Time           `json:"generatedAt"`
}

// QueueRow is the compact per-fan record used for cross-fan ranking.
type QueueRow struct {
	FanID            string  `json:"fanId" validate:"required"`
	DisplayName      string  `json:"displayName"`
	HealthScore      int     `json:"healthScore" validate:"min=0,max=100"`
	Segment          string  `json:"segment" validate:"oneof=VIP LOYAL_STABLE AT_RISK NEW DORMANT LIGHT"`
	RiskLevel        string  `json:"riskLevel" validate:"oneof=LOW MEDIUM HIGH"`
	Stage            string  `json:"stage" validate:"oneof=NEW WARMING LOYAL RISK"`
	Action           string  `json:"action"`
	CoarseAction     string  `json:"coarseAction" validate:"oneof=RENEW_PACK CARE_VIP WELCOME REACTIVATE_DORMANT OFFER_EXTRA NEUTRAL"`
	LifetimeValue    float64 `json:"lifetimeValue"`
	DaysToExpiry     *int    `json:"daysToExpiry,omitempty"`
	AcceptedRecently bool    `json:"acceptedRecently"`
	Rank             int     `json:"rank"`
}

// QueueStats reports side statistics from the queue post-filter pass.
type QueueStats struct {
	Total           int `json:"total"`
	RemovedArchived int `json:"removedArchived"`
	RemovedBlocked  int `json:"removedBlocked"`
}

// Queue is the ranked work queue for one creator.
type Queue struct {
	CreatorID   string     `json:"creatorId"`
	Rows        []QueueRow `json:"rows"`
	Stats       QueueStats `json:"stats"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// DerivedState is the cached scoring state written back onto the fan record.
type DerivedState struct {
	HealthScore          int
	Segment              string
	RiskLevel            string
	LastMessageAt        *time.Time
	LastCreatorMessageAt *time.Time
	LastPurchaseAt       *time.Time
}
