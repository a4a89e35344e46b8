package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	creatorID := "c-" + uuid.New().String()

	// Fans
	f, err := s.Fans().Create(ctx, &model.Fan{CreatorID: creatorID, DisplayName: "Sam", IsNew: true})
	if err != nil {
		t.Fatalf("CreateFan: %v", err)
	}
	if f.FanID == "" {
		t.Fatalf("CreateFan: empty fan id")
	}
	if got, err := s.Fans().Get(ctx, creatorID, f.FanID); err != nil || got == nil || got.DisplayName != "Sam" {
		t.Fatalf("GetFan: got=%v err=%v", got, err)
	}

	// Ownership isolation: another creator must not see the fan.
	if _, err := s.Fans().Get(ctx, "c-other", f.FanID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetFan cross-creator: want ErrNotFound, got %v", err)
	}

	if lst, err := s.Fans().List(ctx, creatorID); err != nil || len(lst) != 1 {
		t.Fatalf("ListFans: n=%d err=%v", len(lst), err)
	}

	// Grants
	exp := time.Now().UTC().Add(30 * 24 * time.Hour)
	if _, err := s.Grants().Create(ctx, &model.AccessGrant{CreatorID: creatorID, FanID: f.FanID, Type: model.GrantMonthly, Price: 9.99, ExpiresAt: exp}); err != nil {
		t.Fatalf("CreateGrant: %v", err)
	}
	if gs, err := s.Grants().ListByFan(ctx, creatorID, f.FanID); err != nil || len(gs) != 1 || gs[0].Type != model.GrantMonthly {
		t.Fatalf("ListGrants: n=%d err=%v", len(gs), err)
	}

	// Purchases bump the fan's lifetime value and purchase anchor.
	if _, err := s.Purchases().Create(ctx, &model.Purchase{CreatorID: creatorID, FanID: f.FanID, Amount: 25, Kind: model.PurchaseExtra}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if got, err := s.Fans().Get(ctx, creatorID, f.FanID); err != nil || got.LifetimeValue != 25 || got.LastPurchaseAt == nil {
		t.Fatalf("GetFan after purchase: got=%+v err=%v", got, err)
	}
	if ps, err := s.Purchases().ListByFan(ctx, creatorID, f.FanID); err != nil || len(ps) != 1 {
		t.Fatalf("ListPurchases: n=%d err=%v", len(ps), err)
	}

	// Archived purchases are recorded but do not move the fan record.
	if _, err := s.Purchases().Create(ctx, &model.Purchase{CreatorID: creatorID, FanID: f.FanID, Amount: 99, Kind: model.PurchaseExtra, Archived: true}); err != nil {
		t.Fatalf("CreatePurchase archived: %v", err)
	}
	if got, _ := s.Fans().Get(ctx, creatorID, f.FanID); got.LifetimeValue != 25 {
		t.Fatalf("archived purchase changed lifetime value: %v", got.LifetimeValue)
	}

	// Messages: only fan-visible audiences count for LastVisibleAt.
	if _, err := s.Messages().Create(ctx, &model.Message{CreatorID: creatorID, FanID: f.FanID, Sender: "fan", Audience: model.AudienceFan, SentAt: time.Now().UTC().Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := s.Messages().Create(ctx, &model.Message{CreatorID: creatorID, FanID: f.FanID, Sender: "other", Audience: model.AudienceInternal, SentAt: time.Now().UTC()}); err != nil {
		t.Fatalf("CreateMessage internal: %v", err)
	}
	last, err := s.Messages().LastVisibleAt(ctx, creatorID, f.FanID)
	if err != nil || last == nil {
		t.Fatalf("LastVisibleAt: last=%v err=%v", last, err)
	}
	if time.Since(*last) < time.Hour {
		t.Fatalf("LastVisibleAt picked internal message: %v", last)
	}

	// Notes: latest wins.
	if n, err := s.Notes().Latest(ctx, creatorID, f.FanID); err != nil || n != nil {
		t.Fatalf("Latest note on empty: n=%v err=%v", n, err)
	}
	if _, err := s.Notes().Upsert(ctx, &model.FanNote{CreatorID: creatorID, FanID: f.FanID, Content: "first"}); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}
	if _, err := s.Notes().Upsert(ctx, &model.FanNote{CreatorID: creatorID, FanID: f.FanID, Content: "second"}); err != nil {
		t.Fatalf("UpsertNote second: %v", err)
	}
	if n, err := s.Notes().Latest(ctx, creatorID, f.FanID); err != nil || n == nil || n.Content != "second" {
		t.Fatalf("Latest note: n=%v err=%v", n, err)
	}

	// Derived write-back round-trips.
	score := 72
	msgAt := time.Now().UTC().Add(-24 * time.Hour)
	err = s.Fans().UpdateDerived(ctx, creatorID, f.FanID, model.DerivedState{
		HealthScore:   score,
		Segment:       "LIGHT",
		RiskLevel:     "MEDIUM",
		LastMessageAt: &msgAt,
	})
	if err != nil {
		t.Fatalf("UpdateDerived: %v", err)
	}
	got, err := s.Fans().Get(ctx, creatorID, f.FanID)
	if err != nil || got.HealthScore == nil || *got.HealthScore != score || got.Segment == nil || *got.Segment != "LIGHT" {
		t.Fatalf("GetFan after UpdateDerived: got=%+v err=%v", got, err)
	}

	if err := s.Fans().UpdateDerived(ctx, creatorID, "f-missing", model.DerivedState{}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateDerived missing fan: want ErrNotFound, got %v", err)
	}
}
