// Package config provides configuration management for the alarm application.
package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	apperrors "crypto-alarm/internal/errors"
)

// DefaultCredentialsFile returns the default credentials file path.
func DefaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/crypto-alarm.conf"
	}
	return filepath.Join(home, ".config", "crypto-alarm.conf")
}

// Credentials holds exchange API credentials.
type Credentials struct {
	APIKey    string
	APISecret string
}

// LoadBinanceCredentials reads the [binance] section of an INI-style
// credentials file. Absence of the file, the section, or a blank key is a
// configuration error. Only called when the binance backend is selected.
func LoadBinanceCredentials(path string) (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, apperrors.NewConfigError("config", "reading credentials file "+path, err)
	}

	creds := Credentials{
		APIKey:    strings.TrimSpace(v.GetString("binance.api_key")),
		APISecret: strings.TrimSpace(v.GetString("binance.api_secret")),
	}

	if creds.APIKey == "" {
		return Credentials{}, apperrors.NewConfigError("binance.api_key",
			"binance section does not contain an api_key", apperrors.ErrMissingCredentials)
	}
	if creds.APISecret == "" {
		return Credentials{}, apperrors.NewConfigError("binance.api_secret",
			"binance section does not contain an api_secret", apperrors.ErrMissingCredentials)
	}

	return creds, nil
}

// Watch pairs one tracked symbol with its alert step size.
type Watch struct {
	Symbol string
	Step   float64
}

// ParseWatches zips the comma-separated coins and steps lists pairwise by
// position. A count mismatch, empty entry, or non-positive step is a
// configuration error.
func ParseWatches(coins, steps string) ([]Watch, error) {
	symbols := splitList(coins)
	stepList := splitList(steps)

	if len(symbols) == 0 {
		return nil, apperrors.NewConfigError("coins", "no coins given", nil)
	}
	if len(symbols) != len(stepList) {
		return nil, apperrors.NewConfigError("steps",
			"got "+strconv.Itoa(len(stepList))+" steps for "+strconv.Itoa(len(symbols))+" coins",
			apperrors.ErrStepMismatch)
	}

	watches := make([]Watch, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for i, sym := range symbols {
		if sym == "" {
			return nil, apperrors.NewConfigError("coins", "empty coin symbol at position "+strconv.Itoa(i+1), nil)
		}
		sym = strings.ToUpper(sym)
		if seen[sym] {
			return nil, apperrors.NewConfigError("coins", sym+" listed more than once", nil)
		}
		seen[sym] = true

		step, err := strconv.ParseFloat(stepList[i], 64)
		if err != nil {
			return nil, apperrors.NewConfigError("steps", "invalid step for "+sym, err)
		}
		if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
			return nil, apperrors.NewConfigError("steps", "step for "+sym+" must be a finite positive number", nil)
		}

		watches = append(watches, Watch{Symbol: sym, Step: step})
	}

	return watches, nil
}

// Symbols returns the watch symbols in configuration order.
func Symbols(watches []Watch) []string {
	out := make([]string, len(watches))
	for i, w := range watches {
		out[i] = w.Symbol
	}
	return out
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
