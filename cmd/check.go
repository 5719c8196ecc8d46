package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tao-cli/substrate"
)

var checkAddress string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test connectivity to the configured chain endpoint",
	Run:   runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkAddress, "address", "", "SS58 address to query the free balance of")
}

func runCheck(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load config: %v", err)))
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	client, err := substrate.Dial(cfg.RPCEndpoint, cfg.FallbackEndpoints, logger)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to connect: %v", err)))
		os.Exit(1)
	}

	chain, err := client.Chain()
	if err != nil {
		chain = "unknown chain"
	}
	block, err := client.CurrentBlock()
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Connected to %s but could not read the head block: %v", chain, err)))
		os.Exit(1)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s | %s | Block %d", client.URL(), chain, block)))

	if checkAddress != "" {
		rao, err := client.FreeBalance(checkAddress)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("Balance query failed: %v", err)))
			os.Exit(1)
		}
		fmt.Println(amountStyle.Render(fmt.Sprintf("Free balance: %.9f TAO", substrate.RaoToTao(rao))))
	}
}
