package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tao-cli/wallet"
)

// RPCEndpointEnv overrides the configured RPC endpoint when set.
const RPCEndpointEnv = "TAO_RPC_ENDPOINT"

// WalletConfig locates the wallet base directory.
type WalletConfig struct {
	BasePath string `yaml:"base_path"`
}

// DisplayConfig tunes output rendering.
type DisplayConfig struct {
	ShowUSDPrices bool `yaml:"show_usd_prices"`
}

// PriceConfig tunes the price cache.
type PriceConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

// Config is the session configuration, loaded once at startup and read-only
// afterwards.
type Config struct {
	RPCEndpoint       string        `yaml:"rpc_endpoint"`
	FallbackEndpoints []string      `yaml:"fallback_endpoints"`
	Wallet            WalletConfig  `yaml:"wallet"`
	Display           DisplayConfig `yaml:"display"`
	Price             PriceConfig   `yaml:"price"`
	LogLevel          string        `yaml:"log_level"`
}

// LoadConfig reads and validates the YAML config file. The wallet base path
// has ~ expanded; TAO_RPC_ENDPOINT overrides the configured endpoint.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := Config{
		Display: DisplayConfig{ShowUSDPrices: true},
		Wallet:  WalletConfig{BasePath: "~/.bittensor/wallets"},
	}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if endpoint := os.Getenv(RPCEndpointEnv); endpoint != "" {
		cfg.RPCEndpoint = endpoint
	}
	if cfg.RPCEndpoint == "" {
		return nil, fmt.Errorf("rpc_endpoint is required")
	}
	cfg.Wallet.BasePath = wallet.ExpandPath(cfg.Wallet.BasePath)
	return &cfg, nil
}
