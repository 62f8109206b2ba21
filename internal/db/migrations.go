package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/questlog/internal/models"
)

// migration is one schema generation: the number is monotonically
// increasing and each step runs at most once per store, in order.
// Steps must be idempotent and must only add fields with safe defaults,
// never drop or rewrite existing data.
type migration struct {
	Generation int
	Name       string
	Run        func(tx *gorm.DB) error
}

// schemaMigration records an applied generation
type schemaMigration struct {
	Generation int    `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	AppliedAt  time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

var migrations = []migration{
	{
		Generation: 1,
		Name:       "create sessions and events",
		Run: func(tx *gorm.DB) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS sessions (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at)`,
				`CREATE TABLE IF NOT EXISTS events (
					id TEXT PRIMARY KEY,
					session_id TEXT NOT NULL,
					tag TEXT NOT NULL DEFAULT '',
					timestamp DATETIME NOT NULL,
					description TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX IF NOT EXISTS idx_events_session_timestamp ON events(session_id, timestamp)`,
			}
			for _, stmt := range stmts {
				if err := execTolerant(tx, stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Generation: 2,
		Name:       "add session type",
		Run: func(tx *gorm.DB) error {
			if err := execTolerant(tx, `ALTER TABLE sessions ADD COLUMN type TEXT NOT NULL DEFAULT ''`); err != nil {
				return err
			}
			// Backfill: sessions written before this generation get the
			// default type. A no-op when re-run.
			backfill := fmt.Sprintf(`UPDATE sessions SET type = '%s' WHERE type IS NULL OR type = ''`, models.DefaultSessionType)
			if err := execTolerant(tx, backfill); err != nil {
				return err
			}
			return execTolerant(tx, `CREATE INDEX IF NOT EXISTS idx_sessions_type ON sessions(type)`)
		},
	},
	{
		Generation: 3,
		Name:       "add event end timestamp",
		Run: func(tx *gorm.DB) error {
			// No backfill: a NULL end_timestamp is meaningful. Events
			// persisted before this generation read back as open with an
			// unrecoverable duration.
			return execTolerant(tx, `ALTER TABLE events ADD COLUMN end_timestamp DATETIME`)
		},
	},
}

// migrate applies every pending generation in order, each in its own
// transaction, and records it in schema_migrations. Any failure aborts
// with a StorageError so the caller does not proceed on a partial schema.
func migrate(gdb *gorm.DB) error {
	if err := gdb.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		generation INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME
	)`).Error; err != nil {
		return &models.StorageError{Op: "ensure migration table", Err: err}
	}

	for _, m := range migrations {
		applied, err := isApplied(gdb, m.Generation)
		if err != nil {
			return &models.StorageError{Op: fmt.Sprintf("check generation %d", m.Generation), Err: err}
		}
		if applied {
			continue
		}

		err = gdb.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Generation: m.Generation,
				Name:       m.Name,
				AppliedAt:  time.Now(),
			}).Error
		})
		if err != nil {
			return &models.StorageError{Op: fmt.Sprintf("migrate to generation %d", m.Generation), Err: err}
		}
	}

	return nil
}

func isApplied(gdb *gorm.DB, generation int) (bool, error) {
	var count int64
	err := gdb.Model(&schemaMigration{}).Where("generation = ?", generation).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// execTolerant runs DDL, treating "already exists" and "duplicate column"
// as success so partially-applied steps are safe to re-run
func execTolerant(tx *gorm.DB, stmt string) error {
	if err := tx.Exec(stmt).Error; err != nil && !isAlreadyExistsErr(err) {
		return err
	}
	return nil
}

func isAlreadyExistsErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}
