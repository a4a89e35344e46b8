package sqlite

import "database/sql"

// Schema is applied on every Open; all statements are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Fans (
        CreatorId            TEXT NOT NULL,
        FanId                TEXT NOT NULL,
        DisplayName          TEXT NOT NULL DEFAULT '',
        LifetimeValue        REAL NOT NULL DEFAULT 0,
        Recent30dSpend       REAL NOT NULL DEFAULT 0,
        IsNew                INTEGER NOT NULL DEFAULT 0,
        Archived             INTEGER NOT NULL DEFAULT 0,
        Blocked              INTEGER NOT NULL DEFAULT 0,
        AcceptedAt           TIMESTAMP,
        CreationTime         TIMESTAMP NOT NULL,
        HealthScore          INTEGER,
        Segment              TEXT,
        RiskLevel            TEXT,
        LastMessageAt        TIMESTAMP,
        LastCreatorMessageAt TIMESTAMP,
        LastPurchaseAt       TIMESTAMP,
        PRIMARY KEY (CreatorId, FanId)
    )`,
	`CREATE TABLE IF NOT EXISTS AccessGrants (
        GrantId   TEXT PRIMARY KEY,
        CreatorId TEXT NOT NULL,
        FanId     TEXT NOT NULL,
        Type      TEXT NOT NULL,
        Price     REAL NOT NULL DEFAULT 0,
        CreatedAt TIMESTAMP NOT NULL,
        ExpiresAt TIMESTAMP NOT NULL,
        FOREIGN KEY (CreatorId, FanId) REFERENCES Fans(CreatorId, FanId) ON DELETE CASCADE
    )`,
	`CREATE TABLE IF NOT EXISTS Purchases (
        PurchaseId TEXT PRIMARY KEY,
        CreatorId  TEXT NOT NULL,
        FanId      TEXT NOT NULL,
        Amount     REAL NOT NULL,
        Tier       TEXT NOT NULL DEFAULT '',
        Kind       TEXT NOT NULL,
        Archived   INTEGER NOT NULL DEFAULT 0,
        CreatedAt  TIMESTAMP NOT NULL,
        FOREIGN KEY (CreatorId, FanId) REFERENCES Fans(CreatorId, FanId) ON DELETE CASCADE
    )`,
	`CREATE TABLE IF NOT EXISTS Messages (
        MessageId TEXT PRIMARY KEY,
        CreatorId TEXT NOT NULL,
        FanId     TEXT NOT NULL,
        Sender    TEXT NOT NULL,
        Audience  TEXT NOT NULL,
        SentAt    TIMESTAMP NOT NULL,
        FOREIGN KEY (CreatorId, FanId) REFERENCES Fans(CreatorId, FanId) ON DELETE CASCADE
    )`,
	`CREATE TABLE IF NOT EXISTS FanNotes (
        CreatorId TEXT NOT NULL,
        FanId     TEXT NOT NULL,
        NoteId    TEXT NOT NULL,
        Content   TEXT NOT NULL,
        CreatedAt TIMESTAMP NOT NULL,
        PRIMARY KEY (CreatorId, FanId),
        FOREIGN KEY (CreatorId, FanId) REFERENCES Fans(CreatorId, FanId) ON DELETE CASCADE
    )`,
	`CREATE INDEX IF NOT EXISTS idx_messages_fan_sent ON Messages(CreatorId, FanId, SentAt)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_fan ON Purchases(CreatorId, FanId)`,
	`CREATE INDEX IF NOT EXISTS idx_grants_fan ON AccessGrants(CreatorId, FanId)`,
}

func applySchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
