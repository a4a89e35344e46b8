package engine

import "github.com/fanpulse/fanpulse/internal/model"

// segmentPriority is the global queue order; lower ranks first. Built once,
// never mutated.
var segmentPriority = map[string]int{
	string(SegmentAtRisk):      0,
	string(SegmentVIP):         1,
	string(SegmentLoyalStable): 2,
	string(SegmentNew):         3,
	string(SegmentDormant):     4,
	string(SegmentLight):       5,
}

// unknownSegmentPriority sorts malformed rows last rather than panicking;
// the contract validator flags them separately.
const unknownSegmentPriority = 6

func priorityOf(segment string) int {
	if p, ok := segmentPriority[segment]; ok {
		return p
	}
	return unknownSegmentPriority
}

// QueueLess is the strict-weak ordering for the creator work queue, meant
// for sort.SliceStable:
//
//	1. segment priority (AT_RISK, VIP, LOYAL_STABLE, NEW, DORMANT, LIGHT)
//	2. inside AT_RISK: lifetime value descending
//	3. elsewhere: health ascending (worst first), then lifetime value descending
func QueueLess(a, b model.QueueRow) bool {
	pa, pb := priorityOf(a.Segment), priorityOf(b.Segment)
	if pa != pb {
		return pa < pb
	}
	if a.Segment == string(SegmentAtRisk) {
		return a.LifetimeValue > b.LifetimeValue
	}
	if a.HealthScore != b.HealthScore {
		return a.HealthScore < b.HealthScore
	}
	return a.LifetimeValue > b.LifetimeValue
}
