package taostats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient(zerolog.Nop())
	c.baseURL = server.URL
	return c
}

func TestAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/account/latest/v1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "5GrwvaEF" {
			t.Fatalf("unexpected address query %q", got)
		}
		w.Write([]byte(`{
			"pagination": {"current_page": 1, "per_page": 50, "total_items": 1, "total_pages": 1},
			"data": [{
				"address": {"ss58": "5GrwvaEF", "hex": "0xdead"},
				"network": "finney",
				"balance_free": "1500000000",
				"balance_staked": "2500000000",
				"balance_total": "4000000000"
			}]
		}`))
	})

	acct, err := c.Account(context.Background(), "5GrwvaEF")
	if err != nil {
		t.Fatalf("Account returned error: %v", err)
	}
	if !acct.FreeTAO.Equal(decimal.NewFromFloat(1.5)) {
		t.Fatalf("expected 1.5 free TAO, got %s", acct.FreeTAO)
	}
	if !acct.StakedTAO.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("expected 2.5 staked TAO, got %s", acct.StakedTAO)
	}
	if !acct.TotalTAO.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected 4 total TAO, got %s", acct.TotalTAO)
	}
}

func TestAccountEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pagination": {}, "data": []}`))
	})
	if _, err := c.Account(context.Background(), "5Nobody"); err == nil {
		t.Fatalf("expected error for unknown account")
	}
}

func TestStakeEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dtao/stake_balance/latest/v1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"pagination": {},
			"data": [
				{"hotkey": {"ss58": "5Hot1"}, "netuid": 8, "subnet_name": "PTN", "balance": "3000000000", "balance_as_tao": "1200000000"},
				{"hotkey": {"ss58": "5Hot2"}, "netuid": 1, "subnet_name": "Apex", "balance": "0", "balance_as_tao": "0"},
				{"hotkey": {"ss58": "5Hot3"}, "netuid": 0, "subnet_name": "Root", "balance": "not-a-number", "balance_as_tao": "0"}
			]
		}`))
	})

	entries, err := c.StakeEntries(context.Background(), "5Cold")
	if err != nil {
		t.Fatalf("StakeEntries returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected zero and unparseable entries dropped, got %+v", entries)
	}
	e := entries[0]
	if e.Hotkey != "5Hot1" || e.Netuid != 8 || e.SubnetName != "PTN" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if !e.Alpha.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected 3 alpha, got %s", e.Alpha)
	}
	if !e.TAOValue.Equal(decimal.NewFromFloat(1.2)) {
		t.Fatalf("expected 1.2 TAO value, got %s", e.TAOValue)
	}
}

func TestSubnetPool(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dtao/pool/latest/v1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("netuid"); got != "8" {
			t.Fatalf("unexpected netuid query %q", got)
		}
		w.Write([]byte(`{
			"pagination": {},
			"data": [{
				"netuid": 8,
				"name": "PTN",
				"symbol": "τ",
				"price": "0.025",
				"tao_in": "5000000000",
				"alpha_out": "200000000000"
			}]
		}`))
	})

	pool, err := c.SubnetPool(context.Background(), 8)
	if err != nil {
		t.Fatalf("SubnetPool returned error: %v", err)
	}
	if pool.Netuid != 8 || pool.Name != "PTN" || pool.Symbol != "τ" {
		t.Fatalf("unexpected pool: %+v", pool)
	}
	// The price field is already TAO per alpha; only the pool sides are RAO.
	if !pool.PriceTAO.Equal(decimal.NewFromFloat(0.025)) {
		t.Fatalf("expected price 0.025 TAO, got %s", pool.PriceTAO)
	}
	if !pool.TaoIn.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5 TAO in pool, got %s", pool.TaoIn)
	}
	if !pool.AlphaOut.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected 200 alpha out, got %s", pool.AlphaOut)
	}
}

func TestSubnetPoolEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pagination": {}, "data": []}`))
	})
	if _, err := c.SubnetPool(context.Background(), 999); err == nil {
		t.Fatalf("expected error for unknown subnet")
	}
}

func TestErrorStatusSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	if _, err := c.Account(context.Background(), "5GrwvaEF"); err == nil {
		t.Fatalf("expected non-200 to surface as error")
	}
}
