package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// New constructs a SQLite-backed store from an opened connection.
func New(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Fans() store.Fans           { return &fans{db: s.db} }
func (s *sqliteStore) Grants() store.Grants       { return &grants{db: s.db} }
func (s *sqliteStore) Purchases() store.Purchases { return &purchases{db: s.db} }
func (s *sqliteStore) Messages() store.Messages   { return &messages{db: s.db} }
func (s *sqliteStore) Notes() store.Notes         { return &notes{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Fans ---

type fans struct{ db *sql.DB }

const fanColumns = `CreatorId, FanId, DisplayName, LifetimeValue, Recent30dSpend, IsNew,
    Archived, Blocked, AcceptedAt, CreationTime, HealthScore, Segment, RiskLevel,
    LastMessageAt, LastCreatorMessageAt, LastPurchaseAt`

func (f *fans) Create(ctx context.Context, m *model.Fan) (*model.Fan, error) {
	out := *m
	if out.FanID == "" {
		out.FanID = uuid.New().String()
	}
	if out.CreationTime.IsZero() {
		out.CreationTime = time.Now().UTC()
	}
	_, err := f.db.ExecContext(ctx, `INSERT INTO Fans
        (CreatorId, FanId, DisplayName, LifetimeValue, Recent30dSpend, IsNew, Archived, Blocked, AcceptedAt, CreationTime)
        VALUES (?,?,?,?,?,?,?,?,?,?)`,
		out.CreatorID, out.FanID, out.DisplayName, out.LifetimeValue, out.Recent30dSpend,
		out.IsNew, out.Archived, out.Blocked, out.AcceptedAt, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *fans) Get(ctx context.Context, creatorID, fanID string) (*model.Fan, error) {
	row := f.db.QueryRowContext(ctx,
		`SELECT `+fanColumns+` FROM Fans WHERE CreatorId = ? AND FanId = ?`, creatorID, fanID)
	return scanFan(row)
}

func (f *fans) List(ctx context.Context, creatorID string) ([]*model.Fan, error) {
	rows, err := f.db.QueryContext(ctx,
		`SELECT `+fanColumns+` FROM Fans WHERE CreatorId = ? ORDER BY CreationTime`, creatorID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Fan
	for rows.Next() {
		fan, err := scanFan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fan)
	}
	return out, rows.Err()
}

func (f *fans) UpdateDerived(ctx context.Context, creatorID, fanID string, d model.DerivedState) error {
	res, err := f.db.ExecContext(ctx, `UPDATE Fans SET
        HealthScore = ?, Segment = ?, RiskLevel = ?,
        LastMessageAt = ?, LastCreatorMessageAt = ?, LastPurchaseAt = ?
        WHERE CreatorId = ? AND FanId = ?`,
		d.HealthScore, d.Segment, d.RiskLevel,
		d.LastMessageAt, d.LastCreatorMessageAt, d.LastPurchaseAt,
		creatorID, fanID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanFan(r rowScanner) (*model.Fan, error) {
	var out model.Fan
	err := r.Scan(&out.CreatorID, &out.FanID, &out.DisplayName, &out.LifetimeValue,
		&out.Recent30dSpend, &out.IsNew, &out.Archived, &out.Blocked, &out.AcceptedAt,
		&out.CreationTime, &out.HealthScore, &out.Segment, &out.RiskLevel,
		&out.LastMessageAt, &out.LastCreatorMessageAt, &out.LastPurchaseAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Grants ---

type grants struct{ db *sql.DB }

func (g *grants) Create(ctx context.Context, m *model.AccessGrant) (*model.AccessGrant, error) {
	out := *m
	if out.GrantID == "" {
		out.GrantID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := g.db.ExecContext(ctx, `INSERT INTO AccessGrants
        (GrantId, CreatorId, FanId, Type, Price, CreatedAt, ExpiresAt) VALUES (?,?,?,?,?,?,?)`,
		out.GrantID, out.CreatorID, out.FanID, out.Type, out.Price, out.CreatedAt, out.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *grants) ListByFan(ctx context.Context, creatorID, fanID string) ([]model.AccessGrant, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT GrantId, CreatorId, FanId, Type, Price, CreatedAt, ExpiresAt
        FROM AccessGrants WHERE CreatorId = ? AND FanId = ? ORDER BY CreatedAt`, creatorID, fanID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.AccessGrant
	for rows.Next() {
		var m model.AccessGrant
		if err := rows.Scan(&m.GrantID, &m.CreatorID, &m.FanID, &m.Type, &m.Price, &m.CreatedAt, &m.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- Purchases ---

type purchases struct{ db *sql.DB }

// Create records the purchase and keeps the fan's lifetime value and
// purchase anchor in step so the scoring inputs stay coherent.
func (p *purchases) Create(ctx context.Context, m *model.Purchase) (*model.Purchase, error) {
	out := *m
	if out.PurchaseID == "" {
		out.PurchaseID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO Purchases
        (PurchaseId, CreatorId, FanId, Amount, Tier, Kind, Archived, CreatedAt) VALUES (?,?,?,?,?,?,?,?)`,
		out.PurchaseID, out.CreatorID, out.FanID, out.Amount, out.Tier, out.Kind, out.Archived, out.CreatedAt); err != nil {
		return nil, err
	}
	if !out.Archived && out.Amount > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE Fans SET
            LifetimeValue = LifetimeValue + ?, LastPurchaseAt = ?
            WHERE CreatorId = ? AND FanId = ?`,
			out.Amount, out.CreatedAt, out.CreatorID, out.FanID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *purchases) ListByFan(ctx context.Context, creatorID, fanID string) ([]model.Purchase, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT PurchaseId, CreatorId, FanId, Amount, Tier, Kind, Archived, CreatedAt
        FROM Purchases WHERE CreatorId = ? AND FanId = ? ORDER BY CreatedAt`, creatorID, fanID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Purchase
	for rows.Next() {
		var m model.Purchase
		if err := rows.Scan(&m.PurchaseID, &m.CreatorID, &m.FanID, &m.Amount, &m.Tier, &m.Kind, &m.Archived, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- Messages ---

type messages struct{ db *sql.DB }

func (m *messages) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	out := *msg
	if out.MessageID == "" {
		out.MessageID = uuid.New().String()
	}
	if out.SentAt.IsZero() {
		out.SentAt = time.Now().UTC()
	}
	_, err := m.db.ExecContext(ctx, `INSERT INTO Messages
        (MessageId, CreatorId, FanId, Sender, Audience, SentAt) VALUES (?,?,?,?,?,?)`,
		out.MessageID, out.CreatorID, out.FanID, out.Sender, out.Audience, out.SentAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *messages) LastVisibleAt(ctx context.Context, creatorID, fanID string) (*time.Time, error) {
	var last time.Time
	err := m.db.QueryRowContext(ctx, `SELECT SentAt FROM Messages
        WHERE CreatorId = ? AND FanId = ? AND Audience IN (?, ?)
        ORDER BY SentAt DESC LIMIT 1`,
		creatorID, fanID, model.AudienceFan, model.AudienceCreator).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last, nil
}

// --- Notes ---

type notes struct{ db *sql.DB }

func (n *notes) Upsert(ctx context.Context, note *model.FanNote) (*model.FanNote, error) {
	out := *note
	if out.NoteID == "" {
		out.NoteID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := n.db.ExecContext(ctx, `INSERT INTO FanNotes (CreatorId, FanId, NoteId, Content, CreatedAt)
        VALUES (?,?,?,?,?)
        ON CONFLICT (CreatorId, FanId) DO UPDATE SET NoteId = excluded.NoteId,
        Content = excluded.Content, CreatedAt = excluded.CreatedAt`,
		out.CreatorID, out.FanID, out.NoteID, out.Content, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (n *notes) Latest(ctx context.Context, creatorID, fanID string) (*model.FanNote, error) {
	var out model.FanNote
	err := n.db.QueryRowContext(ctx, `SELECT CreatorId, FanId, NoteId, Content, CreatedAt
        FROM FanNotes WHERE CreatorId = ? AND FanId = ?`, creatorID, fanID).
		Scan(&out.CreatorID, &out.FanID, &out.NoteID, &out.Content, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
