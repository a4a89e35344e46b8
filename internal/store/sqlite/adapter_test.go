package sqlite

import (
	"testing"

	"github.com/fanpulse/fanpulse/internal/store"
	"github.com/fanpulse/fanpulse/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}

func TestOpen_CreatesFileAndSchema(t *testing.T) {
	path := t.TempDir() + "/nested/dir/fanpulse.db"
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM Fans`).Scan(&n); err != nil {
		t.Fatalf("schema not applied: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh database not empty: %d", n)
	}
}
