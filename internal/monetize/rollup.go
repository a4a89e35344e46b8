// Package monetize computes the monetary rollup attached to fan summaries.
package monetize

import (
	"context"
	"time"

	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// Provider supplies the monetization rollup for one relationship.
type Provider interface {
	Rollup(ctx context.Context, creatorID, fanID string, now time.Time) (*model.MonetizationSummary, error)
}

// StoreProvider derives the rollup directly from stored grants and purchases.
type StoreProvider struct {
	store store.Store
}

func NewStoreProvider(s store.Store) *StoreProvider {
	return &StoreProvider{store: s}
}

func (p *StoreProvider) Rollup(ctx context.Context, creatorID, fanID string, now time.Time) (*model.MonetizationSummary, error) {
	grants, err := p.store.Grants().ListByFan(ctx, creatorID, fanID)
	if err != nil {
		return nil, err
	}
	purchases, err := p.store.Purchases().ListByFan(ctx, creatorID, fanID)
	if err != nil {
		return nil, err
	}

	out := &model.MonetizationSummary{}

	// The subscription rollup reflects the latest-expiring active renewable
	// grant; when several overlap, that is the one whose end matters.
	var best *model.AccessGrant
	for i := range grants {
		g := grants[i]
		if !g.Active(now) {
			continue
		}
		if g.Type != model.GrantMonthly && g.Type != model.GrantSpecial {
			continue
		}
		if best == nil || g.ExpiresAt.After(best.ExpiresAt) {
			best = &grants[i]
		}
	}
	if best != nil {
		out.SubscriptionActive = true
		out.SubscriptionPrice = best.Price
		d := int(best.ExpiresAt.Sub(now).Hours() / 24)
		out.SubscriptionDaysLeft = &d
	}

	since30d := now.AddDate(0, 0, -30)
	for i := range purchases {
		pu := purchases[i]
		if pu.Archived || pu.Amount <= 0 {
			continue
		}
		switch pu.Kind {
		case model.PurchaseExtra:
			out.ExtrasCount++
			out.ExtrasTotal += pu.Amount
		case model.PurchaseTip:
			out.TipsCount++
			out.TipsTotal += pu.Amount
		case model.PurchaseGift:
			out.GiftsCount++
			out.GiftsTotal += pu.Amount
		}
		out.TotalSpent += pu.Amount
		if pu.CreatedAt.After(since30d) {
			out.Recent30dSpent += pu.Amount
		}
		if out.LastPurchaseAt == nil || pu.CreatedAt.After(*out.LastPurchaseAt) {
			t := pu.CreatedAt
			out.LastPurchaseAt = &t
		}
	}
	return out, nil
}
