package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-alarm/internal/config"
)

func newTestTracker(t *testing.T, symbol string, step float64, strict bool) *Tracker {
	t.Helper()
	return New([]config.Watch{{Symbol: symbol, Step: step}}, strict)
}

func TestEvaluateUpwardCrossing(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, false)
	trk.Seed("BTC", 10000)

	ev := trk.Evaluate("BTC", 10999)
	assert.Equal(t, None, ev.Direction, "10999 stays below the 11000 boundary")

	ev = trk.Evaluate("BTC", 11000)
	assert.Equal(t, Up, ev.Direction, "11000 lands exactly on the next boundary")
	assert.Equal(t, 10999.0, ev.OldPrice)
	assert.Equal(t, 11000.0, ev.NewPrice)
	assert.Equal(t, 1000.0, ev.Step)
}

func TestEvaluateDownwardCrossing(t *testing.T) {
	trk := newTestTracker(t, "ETH", 10, false)
	trk.Seed("ETH", 2005)

	ev := trk.Evaluate("ETH", 1991)
	assert.Equal(t, Down, ev.Direction, "1991 is at or below floor(2005/10)*10 = 2000")

	// Repeating the same price must not ring again: the new boundaries
	// around 1991 are 1990 and 2000.
	ev = trk.Evaluate("ETH", 1991)
	assert.Equal(t, None, ev.Direction)
}

func TestEvaluateUpdatesLastPriceUnconditionally(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, false)
	trk.Seed("BTC", 10000)

	for _, price := range []float64{10500, 10400, 11000, 11000, 9999} {
		trk.Evaluate("BTC", price)
		last, ok := trk.LastPrice("BTC")
		require.True(t, ok)
		assert.Equal(t, price, last)
	}
}

func TestEvaluateBoundaryTieBreak(t *testing.T) {
	// A price parked exactly on a multiple satisfies the upward test on
	// every sample. This repeat ring is the documented default.
	trk := newTestTracker(t, "BTC", 1000, false)
	trk.Seed("BTC", 11000)

	ev := trk.Evaluate("BTC", 11000)
	assert.Equal(t, Up, ev.Direction)

	ev = trk.Evaluate("BTC", 11000)
	assert.Equal(t, Up, ev.Direction, "still rings while parked on the boundary")
}

func TestEvaluateStrictModeSilencesNoMovement(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, true)
	trk.Seed("BTC", 11000)

	ev := trk.Evaluate("BTC", 11000)
	assert.Equal(t, None, ev.Direction, "strict mode never rings without movement")

	// Movement still rings in strict mode.
	ev = trk.Evaluate("BTC", 12000)
	assert.Equal(t, Up, ev.Direction)
}

func TestEvaluateZeroPriceIsLegal(t *testing.T) {
	trk := newTestTracker(t, "LUNA", 1, false)
	trk.Seed("LUNA", 0.5)

	ev := trk.Evaluate("LUNA", 0)
	assert.Equal(t, Down, ev.Direction, "zero is at the boundary below 0.5")

	last, ok := trk.LastPrice("LUNA")
	require.True(t, ok)
	assert.Equal(t, 0.0, last)
}

func TestEvaluateUnseededSymbolPanics(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, false)

	require.Panics(t, func() {
		trk.Evaluate("BTC", 10000)
	})
}

func TestSeedUnconfiguredSymbolPanics(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, false)

	require.Panics(t, func() {
		trk.Seed("DOGE", 0.1)
	})
}

func TestSeedDoesNotExistBeforeSeeding(t *testing.T) {
	trk := newTestTracker(t, "BTC", 1000, false)

	_, ok := trk.LastPrice("BTC")
	assert.False(t, ok, "no sentinel price exists before seeding")
}

func TestAssetsAreIndependent(t *testing.T) {
	trk := New([]config.Watch{
		{Symbol: "BTC", Step: 1000},
		{Symbol: "ETH", Step: 10},
	}, false)
	trk.Seed("BTC", 10500)
	trk.Seed("ETH", 2005)

	up := trk.Evaluate("BTC", 11000)
	down := trk.Evaluate("ETH", 1991)

	assert.Equal(t, Up, up.Direction)
	assert.Equal(t, Down, down.Direction)

	btcLast, _ := trk.LastPrice("BTC")
	ethLast, _ := trk.LastPrice("ETH")
	assert.Equal(t, 11000.0, btcLast)
	assert.Equal(t, 1991.0, ethLast)
}
