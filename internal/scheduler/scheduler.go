// Package scheduler drives periodic price evaluation for all tracked assets.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	apperrors "crypto-alarm/internal/errors"
	"crypto-alarm/internal/logging"
	"crypto-alarm/internal/pricesource"
	"crypto-alarm/internal/tracker"
)

// State is the scheduler lifecycle state.
type State int32

const (
	// Idle means Run has not been called yet.
	Idle State = iota
	// Seeding means the initial synchronous baseline fetch is in flight.
	Seeding
	// Running means the recurring tick loop is active.
	Running
	// Stopped means the scheduler has shut down.
	Stopped
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Seeding:
		return "seeding"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Alerter consumes crossing events. Events with Direction None are never
// dispatched.
type Alerter interface {
	Dispatch(ev tracker.Event)
}

// Journal optionally records dispatched crossings.
type Journal interface {
	SaveCrossing(ctx context.Context, ev tracker.Event) error
}

// TickerFactory returns a tick channel for the given period and a release
// function. Injected so tests can drive ticks without wall-clock waits.
type TickerFactory func(period time.Duration) (<-chan time.Time, func())

func defaultTicker(period time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(period)
	return t.C, t.Stop
}

// Scheduler runs one evaluation tick for all tracked assets on a fixed
// interval. Ticks never overlap: a single goroutine performs the batched
// fetch and the per-asset evaluations sequentially, so tracker state is
// only ever touched from inside the current tick.
type Scheduler struct {
	source    pricesource.Source
	tracker   *tracker.Tracker
	symbols   []string
	alerter   Alerter
	journal   Journal
	interval  time.Duration
	newTicker TickerFactory
	logger    zerolog.Logger
	state     atomic.Int32
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithTickerFactory overrides the tick source.
func WithTickerFactory(factory TickerFactory) Option {
	return func(s *Scheduler) {
		s.newTicker = factory
	}
}

// WithJournal records every dispatched crossing in the given journal.
func WithJournal(journal Journal) Option {
	return func(s *Scheduler) {
		s.journal = journal
	}
}

// New creates a scheduler in the Idle state.
func New(source pricesource.Source, trk *tracker.Tracker, symbols []string,
	alerter Alerter, interval time.Duration, logger zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:    source,
		tracker:   trk,
		symbols:   symbols,
		alerter:   alerter,
		interval:  interval,
		newTicker: defaultTicker,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) setState(state State) {
	s.state.Store(int32(state))
}

// Run seeds the baseline prices, then evaluates every tracked asset once
// per interval until ctx is cancelled. A seeding failure is fatal and
// returned; a failed tick is logged and skipped, leaving all tracker state
// untouched for the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	s.setState(Seeding)
	defer s.setState(Stopped)

	prices, err := s.fetch(ctx)
	if err != nil {
		return apperrors.Wrap(err, "seeding baseline prices")
	}
	for _, sym := range s.symbols {
		s.tracker.Seed(sym, prices[sym])
		s.logger.Info().
			Str("symbol", sym).
			Float64("price", prices[sym]).
			Msgf("%s price @ %v USD", sym, prices[sym])
	}

	s.setState(Running)
	s.logger.Info().
		Int("assets", len(s.symbols)).
		Str("backend", s.source.Name()).
		Dur("interval", s.interval).
		Msg("Monitoring started")

	tick, stop := s.newTicker(s.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Monitoring stopped")
			return nil
		case <-tick:
			s.runTick(ctx)
		}
	}
}

// runTick performs one evaluation cycle: a single batched fetch, then one
// evaluation per asset against that batch.
func (s *Scheduler) runTick(ctx context.Context) {
	prices, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Price fetch failed, skipping tick")
		return
	}

	for _, sym := range s.symbols {
		ev := s.tracker.Evaluate(sym, prices[sym])
		if ev.Direction != tracker.None {
			s.logCrossing(ev)
			s.alerter.Dispatch(ev)
			if s.journal != nil {
				if err := s.journal.SaveCrossing(ctx, ev); err != nil {
					s.logger.Warn().Err(err).Str("symbol", sym).Msg("Journal write failed")
				}
			}
		}
		s.logger.Info().
			Str("symbol", sym).
			Float64("price", ev.NewPrice).
			Msgf("%s price @ %v USD", sym, ev.NewPrice)
	}
}

// fetch performs one batched price request and logs its outcome.
func (s *Scheduler) fetch(ctx context.Context) (map[string]float64, error) {
	start := time.Now()
	prices, err := s.source.FetchPrices(ctx, s.symbols)
	logging.LogFetch(s.logger, s.source.Name(), len(s.symbols), time.Since(start), err)
	return prices, err
}

func (s *Scheduler) logCrossing(ev tracker.Event) {
	event := s.logger.Info().
		Str("event", "crossing").
		Str("symbol", ev.Symbol).
		Str("direction", ev.Direction.String()).
		Float64("old_price", ev.OldPrice).
		Float64("price", ev.NewPrice).
		Float64("step", ev.Step)

	if ev.Direction == tracker.Up {
		event.Msgf("%s price target increased to %v USD", ev.Symbol, ev.NewPrice)
	} else {
		event.Msgf("%s price target decreased to %v USD", ev.Symbol, ev.NewPrice)
	}
}
