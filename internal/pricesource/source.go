// Package pricesource provides current-price backends for tracked symbols.
package pricesource

import "context"

// Source returns the current USD price for a set of asset symbols.
//
// Implementations are all-or-nothing: the returned map carries an entry for
// every requested symbol, or the whole call fails. Partial results are never
// returned because every tracked asset needs a value on every tick.
type Source interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// FetchPrices returns the current USD price keyed by requested symbol.
	FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}
