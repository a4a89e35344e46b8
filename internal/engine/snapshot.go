// Package engine derives health scores, segments, risk levels, lifecycle
// stages, and next-best-action recommendations from per-fan snapshots, and
// defines the global ordering of the creator work queue.
//
// Every function in this package is a pure function of its inputs. The
// package performs no I/O and holds no mutable state; all lookup tables are
// built once and never written after init.
package engine

import (
	"time"

	"github.com/fanpulse/fanpulse/internal/model"
)

// Snapshot is the derived, immutable view of one relationship at a single
// point in time. Recency fields are nil when there is no evidence at all;
// classifiers must treat nil as "no evidence", never as zero days.
type Snapshot struct {
	DaysSinceLastMessage  *int
	DaysSinceLastPurchase *int

	LifetimeValue  float64
	Recent30dSpend float64
	IsNew          bool

	// HasActiveGrant is true when any grant is unexpired. DaysToExpiry is
	// defined only in that case and counts whole days until the
	// latest-expiring active grant.
	HasActiveGrant bool
	DaysToExpiry   *int

	// HasActiveSubscription is true for an active monthly or special grant.
	HasActiveSubscription bool
	// HasActiveTrialOrWelcome is true for an active trial or welcome grant.
	HasActiveTrialOrWelcome bool

	LifetimeExtraSpend float64
}

// BuildSnapshot computes a Snapshot from raw records. lastVisibleMessage may
// carry a fresher message timestamp than the cached anchor on the fan record
// (e.g. straight off the messages table); the later of the two wins.
func BuildSnapshot(fan *model.Fan, grants []model.AccessGrant, purchases []model.Purchase, lastVisibleMessage *time.Time, now time.Time) Snapshot {
	s := Snapshot{
		LifetimeValue: fan.LifetimeValue,
		IsNew:         fan.IsNew,
	}

	lastMsg := laterOf(fan.LastMessageAt, lastVisibleMessage)
	s.DaysSinceLastMessage = daysSince(lastMsg, now)

	// Recent spend is recomputed from the purchase list; the cached column
	// on the fan record is display-only and may lag.
	since30d := now.AddDate(0, 0, -30)
	lastPurchase := fan.LastPurchaseAt
	for i := range purchases {
		p := purchases[i]
		if p.Archived {
			continue
		}
		if lastPurchase == nil || p.CreatedAt.After(*lastPurchase) {
			t := p.CreatedAt
			lastPurchase = &t
		}
		if p.CountsAsExtra() {
			s.LifetimeExtraSpend += p.Amount
		}
		if p.Amount > 0 && p.CreatedAt.After(since30d) {
			s.Recent30dSpend += p.Amount
		}
	}
	s.DaysSinceLastPurchase = daysSince(lastPurchase, now)

	var latestExpiry *time.Time
	for i := range grants {
		g := grants[i]
		if !g.Active(now) {
			continue
		}
		s.HasActiveGrant = true
		switch g.Type {
		case model.GrantMonthly, model.GrantSpecial:
			s.HasActiveSubscription = true
		case model.GrantTrial, model.GrantWelcome:
			s.HasActiveTrialOrWelcome = true
		}
		if latestExpiry == nil || g.ExpiresAt.After(*latestExpiry) {
			t := g.ExpiresAt
			latestExpiry = &t
		}
	}
	if latestExpiry != nil {
		d := int(latestExpiry.Sub(now).Hours() / 24)
		s.DaysToExpiry = &d
	}
	return s
}

// DaysSinceLastInteraction is the most recent of chat and purchase recency,
// nil when both are unknown. Used by the segment classifier and the action
// engine's dormancy rule only; the health sub-scores consult chat and
// purchase recency separately and never combine them.
func (s Snapshot) DaysSinceLastInteraction() *int {
	a, b := s.DaysSinceLastMessage, s.DaysSinceLastPurchase
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

func daysSince(t *time.Time, now time.Time) *int {
	if t == nil || t.After(now) {
		return nil
	}
	d := int(now.Sub(*t).Hours() / 24)
	return &d
}

func laterOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}
