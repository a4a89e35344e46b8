package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fanpulse/fanpulse/internal/engine"
	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/monetize"
	"github.com/fanpulse/fanpulse/internal/store"
)

// SummaryService builds the full per-relationship report.
type SummaryService struct {
	store  store.Store
	rollup monetize.Provider
	queue  *QueueService
	log    zerolog.Logger
	// strict makes an output-contract violation panic instead of returning
	// an error; enabled outside production so drift between the decision
	// cascade and the declared enums fails loudly in development and tests.
	strict bool
	now    func() time.Time
}

func NewSummaryService(s store.Store, rollup monetize.Provider, queue *QueueService, log zerolog.Logger, strict bool) *SummaryService {
	return &SummaryService{store: s, rollup: rollup, queue: queue, log: log, strict: strict, now: time.Now}
}

// Build assembles the summary for one fan. The derived-state write-back at
// the end is best-effort: its failure is logged and never hides the result.
func (s *SummaryService) Build(ctx context.Context, creatorID, fanID string) (*model.FanSummary, error) {
	if creatorID == "" || fanID == "" {
		return nil, fmt.Errorf("creatorID and fanID are required: %w", model.ErrValidation)
	}
	now := s.now().UTC()

	fan, err := s.store.Fans().Get(ctx, creatorID, fanID)
	if err != nil {
		return nil, err
	}
	grants, err := s.store.Grants().ListByFan(ctx, creatorID, fanID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	purchases, err := s.store.Purchases().ListByFan(ctx, creatorID, fanID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	lastMsg, err := s.store.Messages().LastVisibleAt(ctx, creatorID, fanID)
	if err != nil {
		return nil, fmt.Errorf("last message: %w", err)
	}
	note, err := s.store.Notes().Latest(ctx, creatorID, fanID)
	if err != nil {
		return nil, fmt.Errorf("latest note: %w", err)
	}

	snap := engine.BuildSnapshot(fan, grants, purchases, lastMsg, now)
	ev := engine.Evaluate(snap)

	rollup, err := s.rollup.Rollup(ctx, creatorID, fanID, now)
	if err != nil {
		return nil, fmt.Errorf("monetization rollup: %w", err)
	}

	sum := &model.FanSummary{
		FanID:                 fan.FanID,
		CreatorID:             fan.CreatorID,
		DisplayName:           fan.DisplayName,
		HealthScore:           ev.HealthScore,
		Segment:               string(ev.Segment),
		RiskLevel:             string(ev.Risk),
		Stage:                 string(ev.Stage),
		Tone:                  string(ev.Tone),
		Hint:                  ev.Hint,
		QueueRank:             s.queueRank(ctx, creatorID, fanID),
		LifetimeValue:         fan.LifetimeValue,
		Recent30dSpend:        snap.Recent30dSpend,
		DaysSinceLastMessage:  snap.DaysSinceLastMessage,
		DaysSinceLastPurchase: snap.DaysSinceLastPurchase,
		DaysToExpiry:          snap.DaysToExpiry,
		Advice:                s.advice(ev, fan.DisplayName),
		Monetization:          *rollup,
		Narrative:             engine.NarrativeFor(snap, ev.Segment, ev.Stage, ev.CoarseAction),
		LatestNote:            note,
		GeneratedAt:           now,
	}

	if err := s.checkContract(sum); err != nil {
		return nil, err
	}

	s.writeBack(ctx, fan, snap, ev, lastMsg, now)
	return sum, nil
}

// advice resolves the action copy and interpolates the fan's name into the
// canned suggestions.
func (s *SummaryService) advice(ev engine.Evaluation, name string) model.ActionAdvice {
	c := engine.CopyFor(ev.Action)
	suggestions := make([]string, 0, len(c.Suggestions))
	for _, line := range c.Suggestions {
		suggestions = append(suggestions, strings.ReplaceAll(line, "{name}", name))
	}
	return model.ActionAdvice{
		Action:       string(ev.Action),
		CoarseAction: string(ev.CoarseAction),
		Label:        c.Label,
		Rationale:    c.Rationale,
		Suggestions:  suggestions,
		Focus:        c.Focus,
	}
}

// queueRank is best-effort: a queue build failure or an absent row (fan
// archived or blocked) leaves the rank nil.
func (s *SummaryService) queueRank(ctx context.Context, creatorID, fanID string) *int {
	q, err := s.queue.Build(ctx, creatorID)
	if err != nil {
		s.log.Warn().Err(err).Str("creatorId", creatorID).Str("fanId", fanID).
			Msg("queue rank unavailable for summary")
		return nil
	}
	for i := range q.Rows {
		if q.Rows[i].FanID == fanID {
			return &q.Rows[i].Rank
		}
	}
	return nil
}

// writeBack refreshes the cached derived columns on the fan record.
func (s *SummaryService) writeBack(ctx context.Context, fan *model.Fan, snap engine.Snapshot, ev engine.Evaluation, lastMsg *time.Time, now time.Time) {
	d := model.DerivedState{
		HealthScore:          ev.HealthScore,
		Segment:              string(ev.Segment),
		RiskLevel:            string(ev.Risk),
		LastMessageAt:        fan.LastMessageAt,
		LastCreatorMessageAt: fan.LastCreatorMessageAt,
		LastPurchaseAt:       fan.LastPurchaseAt,
	}
	if lastMsg != nil && (d.LastMessageAt == nil || lastMsg.After(*d.LastMessageAt)) {
		d.LastMessageAt = lastMsg
	}
	if snap.DaysSinceLastPurchase != nil && d.LastPurchaseAt == nil {
		t := now.AddDate(0, 0, -*snap.DaysSinceLastPurchase)
		d.LastPurchaseAt = &t
	}
	if err := s.store.Fans().UpdateDerived(ctx, fan.CreatorID, fan.FanID, d); err != nil {
		s.log.Warn().Err(err).Str("creatorId", fan.CreatorID).Str("fanId", fan.FanID).
			Msg("derived-state write-back failed")
	}
}
