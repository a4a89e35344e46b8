package engine

import "testing"

func intPtr(n int) *int { return &n }

func TestHealthScore_Range(t *testing.T) {
	best := Snapshot{
		DaysSinceLastMessage:  intPtr(0),
		DaysSinceLastPurchase: intPtr(1),
		LifetimeValue:         500,
		HasActiveGrant:        true,
		HasActiveSubscription: true,
		DaysToExpiry:          intPtr(20),
	}
	if got := HealthScore(best); got != 100 {
		t.Fatalf("best case: got %d, want 100", got)
	}
	if got := HealthScore(Snapshot{}); got != 0 {
		t.Fatalf("empty snapshot: got %d, want 0", got)
	}
}

func TestChatRecencyScore(t *testing.T) {
	cases := []struct {
		name string
		days *int
		want int
	}{
		{"nil means never messaged", nil, 0},
		{"same day", intPtr(0), 30},
		{"yesterday", intPtr(1), 30},
		{"three days", intPtr(3), 20},
		{"one week", intPtr(7), 10},
		{"eight days", intPtr(8), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := chatRecencyScore(tc.days); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPurchaseRecencyScore(t *testing.T) {
	cases := []struct {
		name string
		days *int
		want int
	}{
		{"nil means never bought", nil, 0},
		{"within a week", intPtr(7), 30},
		{"within a month", intPtr(30), 20},
		{"old purchase still counts", intPtr(400), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := purchaseRecencyScore(tc.days); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestValueTierScore(t *testing.T) {
	cases := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{0.01, 5},
		{29.99, 5},
		{30, 10},
		{99.99, 10},
		{100, 20},
		{1000, 20},
	}
	for _, tc := range cases {
		if got := valueTierScore(tc.value); got != tc.want {
			t.Fatalf("value %.2f: got %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestExpiryProximityScore(t *testing.T) {
	sub := func(days *int) Snapshot {
		return Snapshot{HasActiveGrant: true, HasActiveSubscription: true, DaysToExpiry: days}
	}
	cases := []struct {
		name string
		snap Snapshot
		want int
	}{
		{"long runway", sub(intPtr(8)), 20},
		{"one week left", sub(intPtr(7)), 10},
		{"three days left", sub(intPtr(3)), 10},
		{"tomorrow", sub(intPtr(1)), 5},
		{"expires today", sub(intPtr(0)), 0},
		{"unknown horizon", sub(nil), 0},
		{"no subscription", Snapshot{HasActiveGrant: true, DaysToExpiry: intPtr(20)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := expiryProximityScore(tc.snap); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// A fan with no message history, a purchase 45 days back, and a modest
// lifetime value lands at 20: 0 chat + 10 purchase + 10 value + 0 expiry.
func TestHealthScore_QuietBuyer(t *testing.T) {
	s := Snapshot{
		DaysSinceLastPurchase: intPtr(45),
		LifetimeValue:         35,
	}
	if got := HealthScore(s); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

// Fresher evidence never lowers the score.
func TestHealthScore_Monotonic(t *testing.T) {
	base := Snapshot{
		DaysSinceLastMessage:  intPtr(10),
		DaysSinceLastPurchase: intPtr(40),
		LifetimeValue:         20,
	}
	fresher := base
	fresher.DaysSinceLastMessage = intPtr(2)
	fresher.DaysSinceLastPurchase = intPtr(5)
	if HealthScore(fresher) < HealthScore(base) {
		t.Fatalf("fresher evidence lowered score: %d < %d", HealthScore(fresher), HealthScore(base))
	}
}
