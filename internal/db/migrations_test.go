package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRaw(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questlog.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// buildGen1Store simulates a database written by the first schema
// generation: no type column on sessions, no end_timestamp on events.
func buildGen1Store(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	if err := migrations[0].Run(gdb); err != nil {
		t.Fatalf("run generation 1: %v", err)
	}

	now := time.Now()
	err := gdb.Exec(
		`INSERT INTO sessions (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		"legacy-session", "Old Campaign", now, now,
	).Error
	if err != nil {
		t.Fatalf("insert legacy session: %v", err)
	}

	err = gdb.Exec(
		`INSERT INTO events (id, session_id, tag, timestamp, description) VALUES (?, ?, ?, ?, ?)`,
		"legacy-event", "legacy-session", "Note", now, "from before the type column existed",
	).Error
	if err != nil {
		t.Fatalf("insert legacy event: %v", err)
	}
}

func TestMigrateFreshStore(t *testing.T) {
	gdb := openRaw(t)

	if err := migrate(gdb); err != nil {
		t.Fatalf("migrate() error = %v", err)
	}

	var applied []schemaMigration
	if err := gdb.Order("generation").Find(&applied).Error; err != nil {
		t.Fatalf("read schema_migrations: %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("applied %d generations, want %d", len(applied), len(migrations))
	}
	for i, m := range applied {
		if m.Generation != migrations[i].Generation {
			t.Errorf("generation %d recorded as %d", migrations[i].Generation, m.Generation)
		}
	}
}

func TestMigrateBackfillsSessionType(t *testing.T) {
	gdb := openRaw(t)
	buildGen1Store(t, gdb)

	if err := migrate(gdb); err != nil {
		t.Fatalf("migrate() error = %v", err)
	}

	var sessionType string
	err := gdb.Raw(`SELECT type FROM sessions WHERE id = 'legacy-session'`).Scan(&sessionType).Error
	if err != nil {
		t.Fatalf("read migrated type: %v", err)
	}
	if sessionType != "RPG" {
		t.Errorf("backfilled type = %q, want \"RPG\"", sessionType)
	}

	// The legacy event survived and reads back as open: the new
	// end_timestamp column is NULL, meaning its duration is unrecoverable.
	var endTimestamp sql.NullTime
	err = gdb.Raw(`SELECT end_timestamp FROM events WHERE id = 'legacy-event'`).Scan(&endTimestamp).Error
	if err != nil {
		t.Fatalf("read migrated event: %v", err)
	}
	if endTimestamp.Valid {
		t.Errorf("legacy event end_timestamp = %v, want NULL", endTimestamp.Time)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	gdb := openRaw(t)
	buildGen1Store(t, gdb)

	if err := migrate(gdb); err != nil {
		t.Fatalf("first migrate() error = %v", err)
	}
	if err := migrate(gdb); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}

	var count int64
	if err := gdb.Raw(`SELECT count(*) FROM schema_migrations`).Scan(&count).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != int64(len(migrations)) {
		t.Errorf("schema_migrations has %d rows after re-run, want %d", count, len(migrations))
	}
}

func TestGeneration2StepIsIdempotent(t *testing.T) {
	gdb := openRaw(t)
	buildGen1Store(t, gdb)

	if err := migrate(gdb); err != nil {
		t.Fatalf("migrate() error = %v", err)
	}

	// A session with a real type must not be touched by a re-run
	if err := gdb.Exec(`UPDATE sessions SET type = 'Board Game' WHERE id = 'legacy-session'`).Error; err != nil {
		t.Fatalf("set type: %v", err)
	}

	if err := migrations[1].Run(gdb); err != nil {
		t.Fatalf("re-run generation 2: %v", err)
	}

	var sessionType string
	if err := gdb.Raw(`SELECT type FROM sessions WHERE id = 'legacy-session'`).Scan(&sessionType).Error; err != nil {
		t.Fatalf("read type: %v", err)
	}
	if sessionType != "Board Game" {
		t.Errorf("re-running generation 2 changed type to %q", sessionType)
	}
}
