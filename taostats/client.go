// Package taostats is a minimal client for the Taostats indexer API. It
// supplies the aggregated stake data the chain only exposes through runtime
// APIs: free/staked account totals and the per-hotkey stake breakdown for a
// coldkey. Like the price feed, it is enrichment: callers must keep working
// when the indexer is unreachable.
package taostats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.taostats.io"
	requestTimeout = 10 * time.Second

	// APIKeyEnv names the env var holding an optional Taostats API key.
	APIKeyEnv = "TAOSTATS_API_KEY"
)

var raoPerTao = decimal.NewFromInt(1_000_000_000)

// Account is a coldkey's balance summary in TAO.
type Account struct {
	Address   string
	FreeTAO   decimal.Decimal
	StakedTAO decimal.Decimal
	TotalTAO  decimal.Decimal
}

// StakeEntry is one hotkey/subnet stake position of a coldkey.
type StakeEntry struct {
	Hotkey     string
	Netuid     uint16
	SubnetName string
	Alpha      decimal.Decimal
	TAOValue   decimal.Decimal
}

// Client talks to the Taostats API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client. The API key is read from TAOSTATS_API_KEY and
// sent only when present.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  os.Getenv(APIKeyEnv),
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// Account fetches the latest balance summary for a coldkey address.
func (c *Client) Account(ctx context.Context, ss58 string) (*Account, error) {
	var resp accountResponse
	query := url.Values{"address": {ss58}}
	if err := c.getJSON(ctx, "/api/account/latest/v1", query, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no account data for %s", ss58)
	}
	data := resp.Data[0]

	free, err := parseRao(data.BalanceFree)
	if err != nil {
		return nil, fmt.Errorf("bad free balance: %w", err)
	}
	staked, err := parseRao(data.BalanceStaked)
	if err != nil {
		return nil, fmt.Errorf("bad staked balance: %w", err)
	}
	total, err := parseRao(data.BalanceTotal)
	if err != nil {
		return nil, fmt.Errorf("bad total balance: %w", err)
	}
	return &Account{
		Address:   data.Address.SS58,
		FreeTAO:   free,
		StakedTAO: staked,
		TotalTAO:  total,
	}, nil
}

// StakeEntries fetches every stake position for a coldkey. Entries with a
// zero balance are dropped.
func (c *Client) StakeEntries(ctx context.Context, coldkeySS58 string) ([]StakeEntry, error) {
	var resp stakeBalanceResponse
	query := url.Values{"coldkey": {coldkeySS58}}
	if err := c.getJSON(ctx, "/api/dtao/stake_balance/latest/v1", query, &resp); err != nil {
		return nil, err
	}

	entries := make([]StakeEntry, 0, len(resp.Data))
	for _, d := range resp.Data {
		alpha, err := parseRao(d.Balance)
		if err != nil {
			c.log.Warn().Str("hotkey", d.Hotkey.SS58).Err(err).Msg("skipping unparseable stake entry")
			continue
		}
		if alpha.IsZero() {
			continue
		}
		taoValue, err := parseRao(d.BalanceAsTao)
		if err != nil {
			taoValue = decimal.Zero
		}
		entries = append(entries, StakeEntry{
			Hotkey:     d.Hotkey.SS58,
			Netuid:     d.Netuid,
			SubnetName: d.SubnetName,
			Alpha:      alpha,
			TAOValue:   taoValue,
		})
	}
	return entries, nil
}

// Subnet describes one subnet's liquidity pool.
type Subnet struct {
	Netuid   uint16
	Name     string
	Symbol   string
	PriceTAO decimal.Decimal
	TaoIn    decimal.Decimal
	AlphaOut decimal.Decimal
}

// SubnetPool fetches pool and pricing info for a subnet.
func (c *Client) SubnetPool(ctx context.Context, netuid uint16) (*Subnet, error) {
	var resp subnetPoolResponse
	query := url.Values{"netuid": {fmt.Sprint(netuid)}}
	if err := c.getJSON(ctx, "/api/dtao/pool/latest/v1", query, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no pool data for subnet %d", netuid)
	}
	d := resp.Data[0]

	// Price arrives in TAO per alpha, not RAO.
	priceTAO, err := decimal.NewFromString(d.Price)
	if err != nil {
		priceTAO = decimal.Zero
	}
	taoIn, err := parseRao(d.TaoIn)
	if err != nil {
		taoIn = decimal.Zero
	}
	alphaOut, err := parseRao(d.AlphaOut)
	if err != nil {
		alphaOut = decimal.Zero
	}
	return &Subnet{
		Netuid:   d.Netuid,
		Name:     d.Name,
		Symbol:   d.Symbol,
		PriceTAO: priceTAO,
		TaoIn:    taoIn,
		AlphaOut: alphaOut,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("taostats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("taostats returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode taostats response: %w", err)
	}
	return nil
}

// parseRao converts a RAO string amount into a TAO decimal.
func parseRao(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	rao, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	return rao.Div(raoPerTao), nil
}
