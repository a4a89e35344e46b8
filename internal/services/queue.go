// Package services orchestrates storage, the scoring engine, and the
// monetization rollup into the two product operations: the per-fan summary
// and the creator-wide priority queue.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fanpulse/fanpulse/internal/engine"
	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// acceptedRecentlyWindow is how far back an invitation acceptance still
// counts as "recent" on a queue row.
const acceptedRecentlyWindow = 30 * 24 * time.Hour

// QueueService builds the globally ranked work queue for one creator.
type QueueService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewQueueService(s store.Store, log zerolog.Logger) *QueueService {
	return &QueueService{store: s, log: log, now: time.Now}
}

// Build scores every fan of the creator, sorts them into the priority
// order, then drops archived and blocked fans, tags recent acceptances,
// and assigns 1-based ranks.
func (s *QueueService) Build(ctx context.Context, creatorID string) (*model.Queue, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("creatorID is required: %w", model.ErrValidation)
	}
	now := s.now().UTC()

	fans, err := s.store.Fans().List(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list fans: %w", err)
	}

	type scored struct {
		row      model.QueueRow
		archived bool
		blocked  bool
		accepted *time.Time
	}
	rows := make([]scored, 0, len(fans))
	for _, fan := range fans {
		row, err := s.scoreFan(ctx, fan, now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, scored{row: *row, archived: fan.Archived, blocked: fan.Blocked, accepted: fan.AcceptedAt})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return engine.QueueLess(rows[i].row, rows[j].row)
	})

	q := &model.Queue{CreatorID: creatorID, Rows: []model.QueueRow{}, GeneratedAt: now}
	for _, r := range rows {
		// Archived fans hide blocked status below archival; count each row once.
		switch {
		case r.archived:
			q.Stats.RemovedArchived++
			continue
		case r.blocked:
			q.Stats.RemovedBlocked++
			continue
		}
		row := r.row
		row.AcceptedRecently = r.accepted != nil && now.Sub(*r.accepted) <= acceptedRecentlyWindow
		row.Rank = len(q.Rows) + 1
		q.Rows = append(q.Rows, row)
	}
	q.Stats.Total = len(q.Rows)
	return q, nil
}

// scoreFan evaluates one fan into a queue row (no rollup, no narrative).
func (s *QueueService) scoreFan(ctx context.Context, fan *model.Fan, now time.Time) (*model.QueueRow, error) {
	grants, err := s.store.Grants().ListByFan(ctx, fan.CreatorID, fan.FanID)
	if err != nil {
		return nil, fmt.Errorf("list grants for %s: %w", fan.FanID, err)
	}
	purchases, err := s.store.Purchases().ListByFan(ctx, fan.CreatorID, fan.FanID)
	if err != nil {
		return nil, fmt.Errorf("list purchases for %s: %w", fan.FanID, err)
	}
	lastMsg, err := s.store.Messages().LastVisibleAt(ctx, fan.CreatorID, fan.FanID)
	if err != nil {
		return nil, fmt.Errorf("last message for %s: %w", fan.FanID, err)
	}

	snap := engine.BuildSnapshot(fan, grants, purchases, lastMsg, now)
	ev := engine.Evaluate(snap)

	return &model.QueueRow{
		FanID:         fan.FanID,
		DisplayName:   fan.DisplayName,
		HealthScore:   ev.HealthScore,
		Segment:       string(ev.Segment),
		RiskLevel:     string(ev.Risk),
		Stage:         string(ev.Stage),
		Action:        string(ev.Action),
		CoarseAction:  string(ev.CoarseAction),
		LifetimeValue: fan.LifetimeValue,
		DaysToExpiry:  snap.DaysToExpiry,
	}, nil
}
