package engine

import (
	"sort"
	"testing"

	"github.com/fanpulse/fanpulse/internal/model"
)

func row(fanID, segment string, health int, ltv float64) model.QueueRow {
	return model.QueueRow{FanID: fanID, Segment: segment, HealthScore: health, LifetimeValue: ltv}
}

func TestQueueLess_SegmentOrder(t *testing.T) {
	rows := []model.QueueRow{
		row("light", string(SegmentLight), 10, 999),
		row("dormant", string(SegmentDormant), 5, 999),
		row("new", string(SegmentNew), 50, 0),
		row("loyal", string(SegmentLoyalStable), 90, 60),
		row("vip", string(SegmentVIP), 95, 400),
		row("atrisk", string(SegmentAtRisk), 20, 10),
	}
	sort.SliceStable(rows, func(i, j int) bool { return QueueLess(rows[i], rows[j]) })

	want := []string{"atrisk", "vip", "loyal", "new", "dormant", "light"}
	for i, id := range want {
		if rows[i].FanID != id {
			t.Fatalf("position %d: got %s, want %s", i, rows[i].FanID, id)
		}
	}
}

func TestQueueLess_AtRiskByValueDesc(t *testing.T) {
	rows := []model.QueueRow{
		row("small", string(SegmentAtRisk), 5, 20),
		row("big", string(SegmentAtRisk), 35, 300),
	}
	sort.SliceStable(rows, func(i, j int) bool { return QueueLess(rows[i], rows[j]) })
	if rows[0].FanID != "big" {
		t.Fatal("inside AT_RISK the biggest spender ranks first regardless of health")
	}
}

func TestQueueLess_OthersWorstHealthFirst(t *testing.T) {
	rows := []model.QueueRow{
		row("healthy", string(SegmentLight), 80, 10),
		row("sick", string(SegmentLight), 20, 10),
		row("sick-rich", string(SegmentLight), 20, 100),
	}
	sort.SliceStable(rows, func(i, j int) bool { return QueueLess(rows[i], rows[j]) })
	if rows[0].FanID != "sick-rich" || rows[1].FanID != "sick" || rows[2].FanID != "healthy" {
		t.Fatalf("unexpected order: %s %s %s", rows[0].FanID, rows[1].FanID, rows[2].FanID)
	}
}

func TestQueueLess_UnknownSegmentLast(t *testing.T) {
	a := row("known", string(SegmentLight), 50, 0)
	b := row("unknown", "MYSTERY", 0, 1000)
	if !QueueLess(a, b) || QueueLess(b, a) {
		t.Fatal("unknown segments must sort after every known segment")
	}
}
