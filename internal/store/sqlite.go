package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"crypto-alarm/internal/tracker"
)

var _ EventStore = (*SQLiteStore)(nil)

// SQLiteStore implements EventStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed journal, creating the parent
// directory and schema as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crossings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		old_price REAL NOT NULL,
		new_price REAL NOT NULL,
		step REAL NOT NULL,
		at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_crossings_at ON crossings(at);
	CREATE INDEX IF NOT EXISTS idx_crossings_symbol ON crossings(symbol);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveCrossing implements EventStore.
func (s *SQLiteStore) SaveCrossing(ctx context.Context, ev tracker.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO crossings (symbol, direction, old_price, new_price, step, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Symbol, ev.Direction.String(), ev.OldPrice, ev.NewPrice, ev.Step, time.Now().UTC())
	return err
}

// RecentCrossings implements EventStore, newest first.
func (s *SQLiteStore) RecentCrossings(ctx context.Context, limit int) ([]Crossing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, direction, old_price, new_price, step, at
		 FROM crossings ORDER BY at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crossings []Crossing
	for rows.Next() {
		var c Crossing
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Direction, &c.OldPrice, &c.NewPrice, &c.Step, &c.At); err != nil {
			return nil, err
		}
		crossings = append(crossings, c)
	}
	return crossings, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
