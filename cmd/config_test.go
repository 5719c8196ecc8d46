package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
rpc_endpoint: wss://entrypoint-finney.opentensor.ai:443
fallback_endpoints:
  - wss://lite.sub.latent.to:443
wallet:
  base_path: /tmp/wallets
display:
  show_usd_prices: false
price:
  cache_ttl_seconds: 300
log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RPCEndpoint != "wss://entrypoint-finney.opentensor.ai:443" {
		t.Fatalf("unexpected rpc endpoint: %s", cfg.RPCEndpoint)
	}
	if len(cfg.FallbackEndpoints) != 1 || cfg.FallbackEndpoints[0] != "wss://lite.sub.latent.to:443" {
		t.Fatalf("unexpected fallbacks: %+v", cfg.FallbackEndpoints)
	}
	if cfg.Wallet.BasePath != "/tmp/wallets" {
		t.Fatalf("unexpected base path: %s", cfg.Wallet.BasePath)
	}
	if cfg.Display.ShowUSDPrices {
		t.Fatalf("expected usd prices disabled")
	}
	if cfg.Price.CacheTTLSeconds != 300 {
		t.Fatalf("unexpected cache ttl: %d", cfg.Price.CacheTTLSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "rpc_endpoint: wss://example.org\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.Display.ShowUSDPrices {
		t.Fatalf("usd prices should default on")
	}
	if cfg.Wallet.BasePath == "" {
		t.Fatalf("base path should have a default")
	}
}

func TestLoadConfigRequiresEndpoint(t *testing.T) {
	path := writeConfig(t, "wallet:\n  base_path: /tmp/w\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing rpc_endpoint")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv(RPCEndpointEnv, "wss://override.example.org")
	path := writeConfig(t, "rpc_endpoint: wss://configured.example.org\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RPCEndpoint != "wss://override.example.org" {
		t.Fatalf("env override not applied: %s", cfg.RPCEndpoint)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
