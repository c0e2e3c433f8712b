package alert

import (
	"github.com/rs/zerolog"

	"crypto-alarm/internal/tracker"
)

// Dispatcher maps a crossing event to its alert sound. Playback is
// fire-and-forget: failures are logged and never stop the poll cycle.
type Dispatcher struct {
	player   Player
	upPath   string
	downPath string
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher playing upPath on upward crossings
// and downPath on downward ones.
func NewDispatcher(player Player, upPath, downPath string, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		player:   player,
		upPath:   upPath,
		downPath: downPath,
		logger:   logger,
	}
}

// Dispatch plays the sound matching the event direction. Events with no
// crossing are ignored.
func (d *Dispatcher) Dispatch(ev tracker.Event) {
	var path string
	switch ev.Direction {
	case tracker.Up:
		path = d.upPath
	case tracker.Down:
		path = d.downPath
	default:
		return
	}

	if err := d.player.Play(path); err != nil {
		d.logger.Warn().
			Err(err).
			Str("symbol", ev.Symbol).
			Str("direction", ev.Direction.String()).
			Msg("Alert playback failed")
	}
}

// Test plays both alert sounds once, returning the first failure.
func (d *Dispatcher) Test() error {
	if err := d.player.Play(d.upPath); err != nil {
		return err
	}
	return d.player.Play(d.downPath)
}

// UpPath returns the configured price-increase sound path.
func (d *Dispatcher) UpPath() string { return d.upPath }

// DownPath returns the configured price-decrease sound path.
func (d *Dispatcher) DownPath() string { return d.downPath }
