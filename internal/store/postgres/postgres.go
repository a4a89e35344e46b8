package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Fans() store.Fans           { return &fans{db: s.db} }
func (s *pgStore) Grants() store.Grants       { return &grants{db: s.db} }
func (s *pgStore) Purchases() store.Purchases { return &purchases{db: s.db} }
func (s *pgStore) Messages() store.Messages   { return &messages{db: s.db} }
func (s *pgStore) Notes() store.Notes         { return &notes{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// Schema setup is handled by migrations outside the service.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

// --- Fans ---

type fans struct{ db *sql.DB }

const fanColumns = `creator_id, fan_id, display_name, lifetime_value, recent30d_spend, is_new,
    archived, blocked, accepted_at, creation_time, health_score, segment, risk_level,
    last_message_at, last_creator_message_at, last_purchase_at`

func (f *fans) Create(ctx context.Context, m *model.Fan) (*model.Fan, error) {
	out := *m
	if out.FanID == "" {
		out.FanID = uuid.New().String()
	}
	var created time.Time
	row := f.db.QueryRowContext(ctx, `
        INSERT INTO fans (creator_id, fan_id, display_name, lifetime_value, recent30d_spend, is_new, archived, blocked, accepted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING creation_time
    `, out.CreatorID, out.FanID, out.DisplayName, out.LifetimeValue, out.Recent30dSpend,
		out.IsNew, out.Archived, out.Blocked, out.AcceptedAt)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out.CreationTime = created
	return &out, nil
}

func (f *fans) Get(ctx context.Context, creatorID, fanID string) (*model.Fan, error) {
	row := f.db.QueryRowContext(ctx, `
        SELECT `+fanColumns+` FROM fans WHERE creator_id=$1 AND fan_id=$2
    `, creatorID, fanID)
	return scanFan(row)
}

func (f *fans) List(ctx context.Context, creatorID string) ([]*model.Fan, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT `+fanColumns+` FROM fans WHERE creator_id=$1 ORDER BY creation_time
    `, creatorID)
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
	res, err := f.db.ExecContext(ctx, `
        UPDATE fans SET health_score=$1, segment=$2, risk_level=$3,
            last_message_at=$4, last_creator_message_at=$5, last_purchase_at=$6
        WHERE creator_id=$7 AND fan_id=$8
    `, d.HealthScore, d.Segment, d.RiskLevel,
		d.LastMessageAt, d.LastCreatorMessageAt, d.LastPurchaseAt, creatorID, fanID)
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
	var created time.Time
	row := g.db.QueryRowContext(ctx, `
        INSERT INTO access_grants (grant_id, creator_id, fan_id, type, price, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at
    `, out.GrantID, out.CreatorID, out.FanID, out.Type, out.Price, out.ExpiresAt)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out.CreatedAt = created
	return &out, nil
}

func (g *grants) ListByFan(ctx context.Context, creatorID, fanID string) ([]model.AccessGrant, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT grant_id, creator_id, fan_id, type, price, created_at, expires_at
        FROM access_grants WHERE creator_id=$1 AND fan_id=$2 ORDER BY created_at
    `, creatorID, fanID)
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

func (p *purchases) Create(ctx context.Context, m *model.Purchase) (*model.Purchase, error) {
	out := *m
	if out.PurchaseID == "" {
		out.PurchaseID = uuid.New().String()
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var created time.Time
	row := tx.QueryRowContext(ctx, `
        INSERT INTO purchases (purchase_id, creator_id, fan_id, amount, tier, kind, archived)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at
    `, out.PurchaseID, out.CreatorID, out.FanID, out.Amount, out.Tier, out.Kind, out.Archived)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out.CreatedAt = created

	if !out.Archived && out.Amount > 0 {
		if _, err := tx.ExecContext(ctx, `
            UPDATE fans SET lifetime_value = lifetime_value + $1, last_purchase_at = $2
            WHERE creator_id=$3 AND fan_id=$4
        `, out.Amount, out.CreatedAt, out.CreatorID, out.FanID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *purchases) ListByFan(ctx context.Context, creatorID, fanID string) ([]model.Purchase, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT purchase_id, creator_id, fan_id, amount, tier, kind, archived, created_at
        FROM purchases WHERE creator_id=$1 AND fan_id=$2 ORDER BY created_at
    `, creatorID, fanID)
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
	var sent time.Time
	if out.SentAt.IsZero() {
		row := m.db.QueryRowContext(ctx, `
            INSERT INTO messages (message_id, creator_id, fan_id, sender, audience)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING sent_at
        `, out.MessageID, out.CreatorID, out.FanID, out.Sender, out.Audience)
		if err := row.Scan(&sent); err != nil {
			return nil, err
		}
		out.SentAt = sent
		return &out, nil
	}
	_, err := m.db.ExecContext(ctx, `
        INSERT INTO messages (message_id, creator_id, fan_id, sender, audience, sent_at)
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.MessageID, out.CreatorID, out.FanID, out.Sender, out.Audience, out.SentAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *messages) LastVisibleAt(ctx context.Context, creatorID, fanID string) (*time.Time, error) {
	var last time.Time
	err := m.db.QueryRowContext(ctx, `
        SELECT sent_at FROM messages
        WHERE creator_id=$1 AND fan_id=$2 AND audience IN ($3,$4)
        ORDER BY sent_at DESC LIMIT 1
    `, creatorID, fanID, model.AudienceFan, model.AudienceCreator).Scan(&last)
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
	_, err := n.db.ExecContext(ctx, `
        INSERT INTO fan_notes (creator_id, fan_id, note_id, content, created_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (creator_id, fan_id) DO UPDATE SET
            note_id = EXCLUDED.note_id, content = EXCLUDED.content, created_at = EXCLUDED.created_at
    `, out.CreatorID, out.FanID, out.NoteID, out.Content, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (n *notes) Latest(ctx context.Context, creatorID, fanID string) (*model.FanNote, error) {
	var out model.FanNote
	err := n.db.QueryRowContext(ctx, `
        SELECT creator_id, fan_id, note_id, content, created_at
        FROM fan_notes WHERE creator_id=$1 AND fan_id=$2
    `, creatorID, fanID).Scan(&out.CreatorID, &out.FanID, &out.NoteID, &out.Content, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
