package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crypto-alarm/internal/errors"
)

func TestParseWatchesZipsPairwise(t *testing.T) {
	watches, err := ParseWatches("btc, eth ,xrp", "1000,100,0.05")
	require.NoError(t, err)

	assert.Equal(t, []Watch{
		{Symbol: "BTC", Step: 1000},
		{Symbol: "ETH", Step: 100},
		{Symbol: "XRP", Step: 0.05},
	}, watches)
	assert.Equal(t, []string{"BTC", "ETH", "XRP"}, Symbols(watches))
}

func TestParseWatchesCountMismatch(t *testing.T) {
	_, err := ParseWatches("BTC,ETH", "1000")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrStepMismatch))
}

func TestParseWatchesRejectsBadSteps(t *testing.T) {
	cases := map[string]string{
		"non-numeric": "abc",
		"zero":        "0",
		"negative":    "-5",
		"nan":         "NaN",
		"infinite":    "Inf",
	}
	for name, step := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWatches("BTC", step)
			require.Error(t, err)

			var cfgErr *apperrors.ConfigError
			assert.True(t, apperrors.As(err, &cfgErr))
		})
	}
}

func TestParseWatchesRejectsEmptyAndDuplicateCoins(t *testing.T) {
	_, err := ParseWatches("", "1000")
	require.Error(t, err)

	_, err = ParseWatches("BTC,,ETH", "1,2,3")
	require.Error(t, err)

	_, err = ParseWatches("BTC,btc", "1,2")
	require.Error(t, err, "same coin twice is ambiguous")
}

func writeCredentialsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crypto-alarm.conf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadBinanceCredentials(t *testing.T) {
	path := writeCredentialsFile(t, `[binance]
api_key = abc123
api_secret = def456
`)

	creds, err := LoadBinanceCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", creds.APIKey)
	assert.Equal(t, "def456", creds.APISecret)
}

func TestLoadBinanceCredentialsMissingFile(t *testing.T) {
	_, err := LoadBinanceCredentials(filepath.Join(t.TempDir(), "missing.conf"))
	require.Error(t, err)

	var cfgErr *apperrors.ConfigError
	assert.True(t, apperrors.As(err, &cfgErr))
}

func TestLoadBinanceCredentialsMissingSection(t *testing.T) {
	path := writeCredentialsFile(t, `[other]
api_key = abc123
`)

	_, err := LoadBinanceCredentials(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingCredentials))
}

func TestLoadBinanceCredentialsBlankKey(t *testing.T) {
	path := writeCredentialsFile(t, `[binance]
api_key =
api_secret = def456
`)

	_, err := LoadBinanceCredentials(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingCredentials))
}
