package store

import (
	"context"
	"time"

	"github.com/fanpulse/fanpulse/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Fans() Fans
	Grants() Grants
	Purchases() Purchases
	Messages() Messages
	Notes() Notes
}

type Fans interface {
	Create(ctx context.Context, f *model.Fan) (*model.Fan, error)
	// Get returns model.ErrNotFound when the fan is absent or belongs to a
	// different creator.
	Get(ctx context.Context, creatorID, fanID string) (*model.Fan, error)
	List(ctx context.Context, creatorID string) ([]*model.Fan, error)
	// UpdateDerived refreshes the cached scoring columns. Callers treat a
	// failure as non-fatal.
	UpdateDerived(ctx context.Context, creatorID, fanID string, d model.DerivedState) error
}

type Grants interface {
	Create(ctx context.Context, g *model.AccessGrant) (*model.AccessGrant, error)
	ListByFan(ctx context.Context, creatorID, fanID string) ([]model.AccessGrant, error)
}

type Purchases interface {
	Create(ctx context.Context, p *model.Purchase) (*model.Purchase, error)
	ListByFan(ctx context.Context, creatorID, fanID string) ([]model.Purchase, error)
}

type Messages interface {
	Create(ctx context.Context, m *model.Message) (*model.Message, error)
	// LastVisibleAt returns the timestamp of the most recent fan-visible
	// message (audience FAN or CREATOR), or nil when none exists.
	LastVisibleAt(ctx context.Context, creatorID, fanID string) (*time.Time, error)
}

type Notes interface {
	// Upsert replaces the note content; the latest note wins.
	Upsert(ctx context.Context, n *model.FanNote) (*model.FanNote, error)
	// Latest returns nil, nil when the fan has no note.
	Latest(ctx context.Context, creatorID, fanID string) (*model.FanNote, error)
}
