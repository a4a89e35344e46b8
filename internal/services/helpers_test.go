package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/monetize"
	"github.com/fanpulse/fanpulse/internal/store"
)

// fakeStore is an in-memory store.Store for service tests.
type fakeStore struct {
	fans        map[string]*model.Fan
	grants      map[string][]model.AccessGrant
	purchases   map[string][]model.Purchase
	lastVisible map[string]*time.Time
	notes       map[string]*model.FanNote
	derived     map[string]model.DerivedState

	listErr          error
	updateDerivedErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		fans:        map[string]*model.Fan{},
		grants:      map[string][]model.AccessGrant{},
		purchases:   map[string][]model.Purchase{},
		lastVisible: map[string]*time.Time{},
		notes:       map[string]*model.FanNote{},
		derived:     map[string]model.DerivedState{},
	}
}

func fanKey(creatorID, fanID string) string { return creatorID + "/" + fanID }

func (f *fakeStore) addFan(fan *model.Fan) *fakeStore {
	f.fans[fanKey(fan.CreatorID, fan.FanID)] = fan
	return f
}

func (f *fakeStore) Fans() store.Fans           { return fakeFans{f} }
func (f *fakeStore) Grants() store.Grants       { return fakeGrants{f} }
func (f *fakeStore) Purchases() store.Purchases { return fakePurchases{f} }
func (f *fakeStore) Messages() store.Messages   { return fakeMessages{f} }
func (f *fakeStore) Notes() store.Notes         { return fakeNotes{f} }

type fakeFans struct{ s *fakeStore }

func (f fakeFans) Create(_ context.Context, fan *model.Fan) (*model.Fan, error) {
	f.s.addFan(fan)
	return fan, nil
}

func (f fakeFans) Get(_ context.Context, creatorID, fanID string) (*model.Fan, error) {
	if fan, ok := f.s.fans[fanKey(creatorID, fanID)]; ok {
		return fan, nil
	}
	return nil, model.ErrNotFound
}

func (f fakeFans) List(_ context.Context, creatorID string) ([]*model.Fan, error) {
	if f.s.listErr != nil {
		return nil, f.s.listErr
	}
	var out []*model.Fan
	for _, fan := range f.s.fans {
		if fan.CreatorID == creatorID {
			out = append(out, fan)
		}
	}
	return out, nil
}

func (f fakeFans) UpdateDerived(_ context.Context, creatorID, fanID string, d model.DerivedState) error {
	if f.s.updateDerivedErr != nil {
		return f.s.updateDerivedErr
	}
	f.s.derived[fanKey(creatorID, fanID)] = d
	return nil
}

type fakeGrants struct{ s *fakeStore }

func (g fakeGrants) Create(_ context.Context, grant *model.AccessGrant) (*model.AccessGrant, error) {
	k := fanKey(grant.CreatorID, grant.FanID)
	g.s.grants[k] = append(g.s.grants[k], *grant)
	return grant, nil
}

func (g fakeGrants) ListByFan(_ context.Context, creatorID, fanID string) ([]model.AccessGrant, error) {
	return g.s.grants[fanKey(creatorID, fanID)], nil
}

type fakePurchases struct{ s *fakeStore }

func (p fakePurchases) Create(_ context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	k := fanKey(purchase.CreatorID, purchase.FanID)
	p.s.purchases[k] = append(p.s.purchases[k], *purchase)
	return purchase, nil
}

func (p fakePurchases) ListByFan(_ context.Context, creatorID, fanID string) ([]model.Purchase, error) {
	return p.s.purchases[fanKey(creatorID, fanID)], nil
}

type fakeMessages struct{ s *fakeStore }

func (m fakeMessages) Create(_ context.Context, msg *model.Message) (*model.Message, error) {
	return msg, nil
}

func (m fakeMessages) LastVisibleAt(_ context.Context, creatorID, fanID string) (*time.Time, error) {
	return m.s.lastVisible[fanKey(creatorID, fanID)], nil
}

type fakeNotes struct{ s *fakeStore }

func (n fakeNotes) Upsert(_ context.Context, note *model.FanNote) (*model.FanNote, error) {
	n.s.notes[fanKey(note.CreatorID, note.FanID)] = note
	return note, nil
}

func (n fakeNotes) Latest(_ context.Context, creatorID, fanID string) (*model.FanNote, error) {
	return n.s.notes[fanKey(creatorID, fanID)], nil
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRollup(fs *fakeStore) monetize.Provider { return monetize.NewStoreProvider(fs) }

func newTestQueueService(fs *fakeStore) *QueueService {
	qs := NewQueueService(fs, zerolog.Nop())
	qs.now = func() time.Time { return testNow }
	return qs
}

func newTestSummaryService(fs *fakeStore) *SummaryService {
	ss := NewSummaryService(fs, newTestRollup(fs), newTestQueueService(fs), zerolog.Nop(), true)
	ss.now = func() time.Time { return testNow }
	return ss
}
