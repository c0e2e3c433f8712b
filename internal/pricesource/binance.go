package pricesource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/adshao/go-binance/v2"

	"crypto-alarm/internal/config"
	apperrors "crypto-alarm/internal/errors"
)

var _ Source = (*Binance)(nil)

// Binance fetches ticker prices from the Binance spot API using the
// {SYMBOL}USDT trading pair for each tracked symbol.
type Binance struct {
	cli *binance.Client
}

// NewBinance creates a Binance source from API credentials. Blank
// credentials fail at construction, before any scheduling begins.
func NewBinance(creds config.Credentials) (*Binance, error) {
	if strings.TrimSpace(creds.APIKey) == "" || strings.TrimSpace(creds.APISecret) == "" {
		return nil, apperrors.NewConfigError("binance",
			"api_key and api_secret are required for the binance backend",
			apperrors.ErrMissingCredentials)
	}
	return &Binance{cli: binance.NewClient(creds.APIKey, creds.APISecret)}, nil
}

// NewBinanceWithClient creates a Binance source around an existing client.
func NewBinanceWithClient(cli *binance.Client) *Binance {
	return &Binance{cli: cli}
}

// Name implements Source.
func (b *Binance) Name() string { return "binance" }

// FetchPrices implements Source. A symbol the exchange does not support
// fails the whole fetch with that symbol identified; no partial map is
// ever returned.
func (b *Binance) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		pair := strings.ToUpper(sym) + "USDT"
		res, err := b.cli.NewListPricesService().Symbol(pair).Do(ctx)
		if err != nil {
			return nil, apperrors.NewFetchError(b.Name(), sym, err)
		}
		if len(res) == 0 {
			return nil, apperrors.NewFetchError(b.Name(), sym, apperrors.ErrSymbolNotFound)
		}

		price, err := strconv.ParseFloat(res[0].Price, 64)
		if err != nil {
			return nil, apperrors.NewFetchError(b.Name(), sym,
				fmt.Errorf("unparseable price %q for %s", res[0].Price, pair))
		}
		prices[strings.ToUpper(sym)] = price
	}

	return prices, nil
}
