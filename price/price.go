// Package price fetches the TAO/USD spot price. Binance is the primary
// source with CoinGecko as fallback; the result is cached so a session makes
// at most one round trip per TTL window. Price is enrichment only: callers
// must render TAO figures even when no quote is available.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBinanceURL   = "https://api.binance.com/api/v3/ticker/price?symbol=TAOUSDT"
	defaultCoinGeckoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bittensor&vs_currencies=usd"

	requestTimeout = 5 * time.Second
)

type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type coingeckoSimple struct {
	Bittensor struct {
		USD float64 `json:"usd"`
	} `json:"bittensor"`
}

// Quote is one fetched TAO/USD price.
type Quote struct {
	USD       float64
	FetchedAt time.Time
}

// Fetcher retrieves and caches the TAO/USD price.
type Fetcher struct {
	client       *http.Client
	binanceURL   string
	coingeckoURL string
	ttl          time.Duration
	log          zerolog.Logger

	cached *Quote
}

// NewFetcher builds a Fetcher with the given cache TTL. A zero TTL caches for
// the whole session.
func NewFetcher(ttl time.Duration, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:       &http.Client{Timeout: requestTimeout},
		binanceURL:   defaultBinanceURL,
		coingeckoURL: defaultCoinGeckoURL,
		ttl:          ttl,
		log:          log,
	}
}

// TAOPrice returns the cached or freshly fetched TAO/USD price. The bool is
// false when no source is reachable; callers degrade to TAO-only output.
func (f *Fetcher) TAOPrice(ctx context.Context) (float64, bool) {
	if f.cached != nil && (f.ttl == 0 || time.Since(f.cached.FetchedAt) < f.ttl) {
		return f.cached.USD, true
	}

	usd, err := f.fetchBinance(ctx)
	if err != nil {
		f.log.Warn().Err(err).Msg("binance price fetch failed, trying coingecko")
		usd, err = f.fetchCoinGecko(ctx)
	}
	if err != nil {
		f.log.Warn().Err(err).Msg("could not fetch TAO price")
		return 0, false
	}

	f.cached = &Quote{USD: usd, FetchedAt: time.Now()}
	return usd, true
}

func (f *Fetcher) fetchBinance(ctx context.Context) (float64, error) {
	var ticker binanceTicker
	if err := f.getJSON(ctx, f.binanceURL, &ticker); err != nil {
		return 0, err
	}
	usd, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable binance price %q: %w", ticker.Price, err)
	}
	if usd <= 0 {
		return 0, fmt.Errorf("binance returned non-positive price %f", usd)
	}
	return usd, nil
}

func (f *Fetcher) fetchCoinGecko(ctx context.Context) (float64, error) {
	var simple coingeckoSimple
	if err := f.getJSON(ctx, f.coingeckoURL, &simple); err != nil {
		return 0, err
	}
	if simple.Bittensor.USD <= 0 {
		return 0, fmt.Errorf("coingecko returned non-positive price %f", simple.Bittensor.USD)
	}
	return simple.Bittensor.USD, nil
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
