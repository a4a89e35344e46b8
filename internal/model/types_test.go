package model

import (
	"testing"
	"time"
)

func TestAccessGrant_Active(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	if !(AccessGrant{ExpiresAt: now.Add(time.Minute)}).Active(now) {
		t.Fatal("future expiry should be active")
	}
	if (AccessGrant{ExpiresAt: now}).Active(now) {
		t.Fatal("expiry exactly now is no longer active")
	}
	if (AccessGrant{ExpiresAt: now.Add(-time.Minute)}).Active(now) {
		t.Fatal("past expiry should be inactive")
	}
}

func TestPurchase_CountsAsExtra(t *testing.T) {
	cases := []struct {
		name string
		p    Purchase
		want bool
	}{
		{"paid extra", Purchase{Kind: PurchaseExtra, Amount: 10}, true},
		{"tip", Purchase{Kind: PurchaseTip, Amount: 10}, false},
		{"gift", Purchase{Kind: PurchaseGift, Amount: 10}, false},
		{"free extra", Purchase{Kind: PurchaseExtra, Amount: 0}, false},
		{"archived extra", Purchase{Kind: PurchaseExtra, Amount: 10, Archived: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.CountsAsExtra(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMessage_VisibleToFan(t *testing.T) {
	if !(Message{Audience: AudienceFan}).VisibleToFan() {
		t.Fatal("FAN audience is visible")
	}
	if !(Message{Audience: AudienceCreator}).VisibleToFan() {
		t.Fatal("CREATOR audience is visible")
	}
	if (Message{Audience: AudienceInternal}).VisibleToFan() {
		t.Fatal("INTERNAL audience is never visible")
	}
}
