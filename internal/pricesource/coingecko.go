package pricesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "crypto-alarm/internal/errors"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

var _ Source = (*CoinGecko)(nil)

// CoinGecko fetches prices from the public CoinGecko aggregator.
//
// CoinGecko is queried by provider coin id, not ticker symbol, so the
// constructor resolves every requested symbol against the provider catalog
// once. A symbol with no catalog entry fails construction.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	ids     map[string]string // symbol -> provider coin id
}

// CoinGeckoOption customizes a CoinGecko source.
type CoinGeckoOption func(*CoinGecko)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) CoinGeckoOption {
	return func(c *CoinGecko) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) CoinGeckoOption {
	return func(c *CoinGecko) {
		c.client = client
	}
}

type coinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// NewCoinGecko creates a CoinGecko source and resolves the given symbols
// against the provider catalog. Symbol matching is case-insensitive; the
// first catalog entry per symbol wins.
func NewCoinGecko(ctx context.Context, symbols []string, opts ...CoinGeckoOption) (*CoinGecko, error) {
	c := &CoinGecko{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultCoinGeckoBaseURL,
		ids:     make(map[string]string, len(symbols)),
	}
	for _, opt := range opts {
		opt(c)
	}

	var catalog []coinListEntry
	if err := c.getJSON(ctx, c.baseURL+"/coins/list", &catalog); err != nil {
		return nil, apperrors.NewFetchError(c.Name(), "", err)
	}

	for _, entry := range catalog {
		sym := strings.ToUpper(entry.Symbol)
		if _, resolved := c.ids[sym]; resolved {
			continue
		}
		for _, requested := range symbols {
			if strings.EqualFold(requested, entry.Symbol) {
				c.ids[sym] = entry.ID
				break
			}
		}
	}

	for _, requested := range symbols {
		if _, ok := c.ids[strings.ToUpper(requested)]; !ok {
			return nil, apperrors.NewConfigError("coins",
				requested+" has no entry in the coingecko catalog", apperrors.ErrSymbolNotFound)
		}
	}

	return c, nil
}

// Name implements Source.
func (c *CoinGecko) Name() string { return "coingecko" }

// FetchPrices implements Source with one batched simple-price query.
func (c *CoinGecko) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		id, ok := c.ids[strings.ToUpper(sym)]
		if !ok {
			return nil, apperrors.NewFetchError(c.Name(), sym, apperrors.ErrSymbolNotFound)
		}
		ids = append(ids, id)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")

	var priced map[string]map[string]float64
	if err := c.getJSON(ctx, c.baseURL+"/simple/price?"+query.Encode(), &priced); err != nil {
		return nil, apperrors.NewFetchError(c.Name(), "", err)
	}

	prices := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		id := c.ids[strings.ToUpper(sym)]
		usd, ok := priced[id]["usd"]
		if !ok {
			return nil, apperrors.NewFetchError(c.Name(), sym,
				fmt.Errorf("no usd price returned for coin id %s", id))
		}
		prices[strings.ToUpper(sym)] = usd
	}

	return prices, nil
}

func (c *CoinGecko) getJSON(ctx context.Context, rawURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
