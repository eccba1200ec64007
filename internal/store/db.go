package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Lakshit1111/SurdarshanSarees/internal/store/migrations"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store mediates every persistence operation for the shop. Construct one with
// Open and hand it to whoever needs it; there is no package-level instance.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies embedded
// migrations. Foreign keys are enforced so dangling references are rejected
// by the engine rather than papered over here.
func Open(dataSourceName string) (*Store, error) {
	if strings.TrimSpace(dataSourceName) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(dataSourceName) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{DB: db}
	if err := s.migrate(migrations.FS); err != nil {
		_ = db.Close()
		slog.Error("Failed to apply migrations", "error", err)
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
