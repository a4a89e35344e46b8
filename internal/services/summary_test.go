package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fanpulse/fanpulse/internal/model"
)

func seedVIP(fs *fakeStore) {
	msgAt := testNow.AddDate(0, 0, -1)
	purchaseAt := testNow.AddDate(0, 0, -4)
	fs.addFan(&model.Fan{
		CreatorID:      "c1",
		FanID:          "vip",
		DisplayName:    "Ana",
		LifetimeValue:  300,
		LastMessageAt:  &msgAt,
		LastPurchaseAt: &purchaseAt,
	})
	fs.grants["c1/vip"] = []model.AccessGrant{
		{CreatorID: "c1", FanID: "vip", Type: model.GrantMonthly, Price: 25, ExpiresAt: testNow.AddDate(0, 0, 20)},
	}
	fs.purchases["c1/vip"] = []model.Purchase{
		{CreatorID: "c1", FanID: "vip", Amount: 60, Kind: model.PurchaseExtra, CreatedAt: purchaseAt},
		{CreatorID: "c1", FanID: "vip", Amount: 15, Kind: model.PurchaseTip, CreatedAt: testNow.AddDate(0, 0, -10)},
	}
}

func TestSummaryService_Build(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)
	fs.notes["c1/vip"] = &model.FanNote{CreatorID: "c1", FanID: "vip", Content: "prefers mornings"}

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "vip")
	require.NoError(t, err)

	require.Equal(t, "VIP", sum.Segment)
	require.Equal(t, "LOW", sum.RiskLevel)
	require.Equal(t, "Ana", sum.DisplayName)
	require.NotNil(t, sum.QueueRank)
	require.Equal(t, 1, *sum.QueueRank)

	// Monetization reflects the stored grants and purchases.
	require.True(t, sum.Monetization.SubscriptionActive)
	require.Equal(t, 25.0, sum.Monetization.SubscriptionPrice)
	require.Equal(t, 1, sum.Monetization.ExtrasCount)
	require.Equal(t, 60.0, sum.Monetization.ExtrasTotal)
	require.Equal(t, 1, sum.Monetization.TipsCount)
	require.Equal(t, 75.0, sum.Monetization.TotalSpent)

	// Canned suggestions carry the fan's name, not the placeholder.
	for _, line := range sum.Advice.Suggestions {
		require.NotContains(t, line, "{name}")
	}

	require.NotNil(t, sum.LatestNote)
	require.Equal(t, "prefers mornings", sum.LatestNote.Content)
	require.NotEmpty(t, sum.Narrative.Profile)
	require.NotEmpty(t, sum.Narrative.Recent)
	require.NotEmpty(t, sum.Narrative.Opportunity)
}

func TestSummaryService_Build_WritesBackDerivedState(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "vip")
	require.NoError(t, err)

	d, ok := fs.derived["c1/vip"]
	require.True(t, ok, "derived state should be written back")
	require.Equal(t, sum.HealthScore, d.HealthScore)
	require.Equal(t, sum.Segment, d.Segment)
	require.Equal(t, sum.RiskLevel, d.RiskLevel)
}

func TestSummaryService_Build_WriteBackFailureIsNonFatal(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)
	fs.updateDerivedErr = errors.New("disk full")

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "vip")
	require.NoError(t, err)
	require.NotNil(t, sum)
}

func TestSummaryService_Build_QueueRankNilWhenQueueFails(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)
	fs.listErr = errors.New("roster unavailable")

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "vip")
	require.NoError(t, err)
	require.Nil(t, sum.QueueRank)
}

func TestSummaryService_Build_NotFound(t *testing.T) {
	fs := newFakeStore()

	_, err := newTestSummaryService(fs).Build(context.Background(), "c1", "ghost")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSummaryService_Build_RequiresIDs(t *testing.T) {
	fs := newFakeStore()

	_, err := newTestSummaryService(fs).Build(context.Background(), "", "vip")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = newTestSummaryService(fs).Build(context.Background(), "c1", "")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSummaryService_Build_Idempotent(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)
	svc := newTestSummaryService(fs)

	a, err := svc.Build(context.Background(), "c1", "vip")
	require.NoError(t, err)
	b, err := svc.Build(context.Background(), "c1", "vip")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSummaryService_Build_NoHistoryFan(t *testing.T) {
	fs := newFakeStore()
	fs.addFan(&model.Fan{CreatorID: "c1", FanID: "bare", DisplayName: "Bo", IsNew: true})

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "bare")
	require.NoError(t, err)
	require.Equal(t, 0, sum.HealthScore)
	require.Nil(t, sum.DaysSinceLastMessage)
	require.Nil(t, sum.DaysSinceLastPurchase)
	require.Nil(t, sum.DaysToExpiry)
	require.False(t, sum.Monetization.SubscriptionActive)
}

func TestSummaryService_Build_FresherMessageFromTable(t *testing.T) {
	fs := newFakeStore()
	seedVIP(fs)
	fresh := testNow.Add(-2 * time.Hour)
	fs.lastVisible["c1/vip"] = &fresh

	sum, err := newTestSummaryService(fs).Build(context.Background(), "c1", "vip")
	require.NoError(t, err)
	require.NotNil(t, sum.DaysSinceLastMessage)
	require.Equal(t, 0, *sum.DaysSinceLastMessage)
}
