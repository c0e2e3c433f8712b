package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-alarm/internal/tracker"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListCrossings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCrossing(ctx, tracker.Event{
		Symbol: "BTC", Direction: tracker.Up,
		OldPrice: 10500, NewPrice: 11000, Step: 1000,
	}))
	require.NoError(t, s.SaveCrossing(ctx, tracker.Event{
		Symbol: "ETH", Direction: tracker.Down,
		OldPrice: 2005, NewPrice: 1991, Step: 10,
	}))

	crossings, err := s.RecentCrossings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, crossings, 2)

	// Newest first.
	assert.Equal(t, "ETH", crossings[0].Symbol)
	assert.Equal(t, "down", crossings[0].Direction)
	assert.Equal(t, 2005.0, crossings[0].OldPrice)
	assert.Equal(t, 1991.0, crossings[0].NewPrice)
	assert.Equal(t, "BTC", crossings[1].Symbol)
	assert.Equal(t, "up", crossings[1].Direction)
	assert.False(t, crossings[0].At.IsZero())
}

func TestRecentCrossingsHonorsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveCrossing(ctx, tracker.Event{
			Symbol: "BTC", Direction: tracker.Up,
			OldPrice: 10000, NewPrice: 11000, Step: 1000,
		}))
	}

	crossings, err := s.RecentCrossings(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, crossings, 3)
}

func TestEmptyJournal(t *testing.T) {
	s := newTestStore(t)

	crossings, err := s.RecentCrossings(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, crossings)
}
