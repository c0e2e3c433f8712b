// Package store provides the optional crossing journal.
package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"crypto-alarm/internal/tracker"
)

// Crossing is one journaled step-boundary crossing. Only fired crossings
// are recorded, never the per-tick price stream.
type Crossing struct {
	ID        int64
	Symbol    string
	Direction string
	OldPrice  float64
	NewPrice  float64
	Step      float64
	At        time.Time
}

// EventStore persists dispatched crossings for later review.
type EventStore interface {
	SaveCrossing(ctx context.Context, ev tracker.Event) error
	RecentCrossings(ctx context.Context, limit int) ([]Crossing, error)
	Close() error
}

// DefaultJournalPath returns the default journal database path.
func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/crypto-alarm/journal.db"
	}
	return filepath.Join(home, ".config", "crypto-alarm", "journal.db")
}
