package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/questlog/internal/state"
)

// Store owns the sqlite database, the active session pointer, and the
// mutation broker behind the watch channels. One Store per running
// application; there are no package-level singletons.
type Store struct {
	db     *gorm.DB
	state  *state.File
	broker *broker
}

// Options configures Open. Zero values select the default locations
// under ~/.questlog.
type Options struct {
	Path      string // sqlite database file
	StatePath string // active session pointer file
}

// Open connects to the database, runs any pending schema migrations, and
// returns a ready Store. A failed migration aborts the open; the store
// must not be used with partially-migrated data.
func Open(opts Options) (*Store, error) {
	dbPath := opts.Path
	if dbPath == "" {
		var err error
		dbPath, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create questlog directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(gdb); err != nil {
		return nil, err
	}

	statePath := opts.StatePath
	if statePath == "" {
		statePath, err = state.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get state path: %w", err)
		}
	}

	return &Store{
		db:     gdb,
		state:  state.NewFile(statePath),
		broker: newBroker(),
	}, nil
}

// DefaultPath returns the path to the sqlite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".questlog", "questlog.db"), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
