package engine

import "testing"

func TestStageFor(t *testing.T) {
	cases := []struct {
		name    string
		snap    Snapshot
		score   int
		segment Segment
		risk    Risk
		want    Stage
	}{
		{
			name:    "high risk dominates even for a VIP",
			snap:    Snapshot{LifetimeValue: 500},
			score:   30,
			segment: SegmentVIP,
			risk:    RiskHigh,
			want:    StageRisk,
		},
		{
			name:    "imminent expiry forces RISK",
			snap:    Snapshot{HasActiveGrant: true, DaysToExpiry: intPtr(5)},
			score:   80,
			segment: SegmentLoyalStable,
			risk:    RiskMedium,
			want:    StageRisk,
		},
		{
			name:    "new flag wins over segment",
			snap:    Snapshot{IsNew: true},
			score:   50,
			segment: SegmentLight,
			risk:    RiskMedium,
			want:    StageNew,
		},
		{
			name:    "loyal via segment",
			snap:    Snapshot{},
			score:   50,
			segment: SegmentLoyalStable,
			risk:    RiskMedium,
			want:    StageLoyal,
		},
		{
			name:    "loyal via recent spend",
			snap:    Snapshot{Recent30dSpend: 60},
			score:   50,
			segment: SegmentLight,
			risk:    RiskMedium,
			want:    StageLoyal,
		},
		{
			name:    "everything else is WARMING",
			snap:    Snapshot{},
			score:   50,
			segment: SegmentLight,
			risk:    RiskMedium,
			want:    StageWarming,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StageFor(tc.snap, tc.score, tc.segment, tc.risk); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestToneFor(t *testing.T) {
	cases := []struct {
		name    string
		snap    Snapshot
		score   int
		segment Segment
		stage   Stage
		want    Tone
	}{
		{"risk stage is DIRECT", Snapshot{}, 80, SegmentVIP, StageRisk, ToneDirect},
		{"at-risk segment is DIRECT", Snapshot{}, 80, SegmentAtRisk, StageLoyal, ToneDirect},
		{"new stage is CLOSE", Snapshot{}, 50, SegmentNew, StageNew, ToneClose},
		{"vip is PLAYFUL", Snapshot{}, 50, SegmentVIP, StageLoyal, TonePlayful},
		{"high score is PLAYFUL", Snapshot{}, 75, SegmentLight, StageWarming, TonePlayful},
		{"default is SERIOUS", Snapshot{}, 50, SegmentLight, StageWarming, ToneSerious},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToneFor(tc.snap, tc.score, tc.segment, tc.stage); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	if h := HintFor(StageRisk, ToneDirect, false); h == defaultHint {
		t.Fatal("dedicated copy expected for high-risk no-spend")
	}
	// Combinations without dedicated copy fall back rather than render empty.
	if h := HintFor(StageWarming, ToneDirect, false); h != defaultHint {
		t.Fatalf("expected fallback hint, got %q", h)
	}
}
