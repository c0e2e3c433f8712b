// Package tracker decides when a price sample crosses a step boundary.
package tracker

import (
	"fmt"
	"math"
	"sync"

	"crypto-alarm/internal/config"
)

// Direction classifies one price evaluation.
type Direction int

const (
	// None means the sample stayed between the surrounding step boundaries.
	None Direction = iota
	// Up means the sample landed on or beyond the next boundary above.
	Up
	// Down means the sample landed on or beyond the next boundary below.
	Down
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Event is the result of evaluating one price sample for one symbol.
// It is consumed immediately by the dispatcher and logger, never stored
// by the tracker itself.
type Event struct {
	Symbol    string
	Direction Direction
	OldPrice  float64
	NewPrice  float64
	Step      float64
}

// Tracker owns the per-symbol last observed price and step size.
//
// A symbol crosses upward when the new sample reaches the next multiple of
// its step above the previous sample, and downward when it reaches the next
// multiple below. A price parked exactly on a multiple satisfies the upward
// test on every sample; that quirk is kept as the default because existing
// users rely on the repeated ring, and Strict turns it off so a no-movement
// sample never reports a crossing.
type Tracker struct {
	mu     sync.Mutex
	steps  map[string]float64
	last   map[string]float64
	seeded map[string]bool
	strict bool
}

// New creates a tracker for the given watches.
func New(watches []config.Watch, strict bool) *Tracker {
	t := &Tracker{
		steps:  make(map[string]float64, len(watches)),
		last:   make(map[string]float64, len(watches)),
		seeded: make(map[string]bool, len(watches)),
		strict: strict,
	}
	for _, w := range watches {
		t.steps[w.Symbol] = w.Step
	}
	return t
}

// Seed establishes the baseline price for a symbol. It never reports a
// crossing; the first evaluation happens on the tick after seeding.
func (t *Tracker) Seed(symbol string, price float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.steps[symbol]; !ok {
		panic(fmt.Sprintf("tracker: seed of unconfigured symbol %s", symbol))
	}
	t.last[symbol] = price
	t.seeded[symbol] = true
}

// LastPrice returns the most recently observed price for a symbol.
func (t *Tracker) LastPrice(symbol string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	price, ok := t.last[symbol]
	return price, ok && t.seeded[symbol]
}

// Evaluate decides whether newPrice crossed a step boundary relative to the
// previous sample and unconditionally replaces the remembered price.
// Evaluating a symbol that was never seeded is an invariant violation and
// panics.
func (t *Tracker) Evaluate(symbol string, newPrice float64) Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seeded[symbol] {
		panic(fmt.Sprintf("tracker: evaluate of unseeded symbol %s", symbol))
	}

	last := t.last[symbol]
	step := t.steps[symbol]

	ev := Event{
		Symbol:   symbol,
		OldPrice: last,
		NewPrice: newPrice,
		Step:     step,
	}

	switch {
	case t.strict && newPrice == last:
		ev.Direction = None
	case newPrice >= math.Ceil(last/step)*step:
		ev.Direction = Up
	case newPrice <= math.Floor(last/step)*step:
		ev.Direction = Down
	default:
		ev.Direction = None
	}

	t.last[symbol] = newPrice
	return ev
}
