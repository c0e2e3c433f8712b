// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrStepMismatch       = errors.New("coins and steps count mismatch")
	ErrNotRunning         = errors.New("no running daemon found")
	ErrConnectionFailed   = errors.New("connection failed")
)

// ConfigError represents a configuration problem detected at startup.
// It is always fatal and reported before any scheduling begins.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error [%s]: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// FetchError represents a failed price fetch. Symbol is set when the
// failure can be pinned on a single requested symbol.
type FetchError struct {
	Backend string
	Symbol  string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("fetch error [%s] %s: %v", e.Backend, e.Symbol, e.Err)
	}
	return fmt.Sprintf("fetch error [%s]: %v", e.Backend, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(backend, symbol string, err error) *FetchError {
	return &FetchError{
		Backend: backend,
		Symbol:  symbol,
		Err:     err,
	}
}

// PlaybackError represents a failed alert sound playback. It is always
// recovered locally: logged, never allowed to stop the poll cycle.
type PlaybackError struct {
	Path string
	Err  error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback error [%s]: %v", e.Path, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// NewPlaybackError creates a new PlaybackError.
func NewPlaybackError(path string, err error) *PlaybackError {
	return &PlaybackError{
		Path: path,
		Err:  err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
