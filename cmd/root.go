package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tao-cli/price"
	"tao-cli/substrate"
	"tao-cli/taostats"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tao-cli",
	Short: "tao-cli manages Bittensor wallets from the terminal.",
	Long:  `An interactive command-line interface to create Bittensor wallets, check balances, register hotkeys, transfer TAO, and manage staking.`,
	Run:   run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(checkCmd)
}

// app bundles the session state every handler needs. Built once after
// startup; the config is read-only from then on.
type app struct {
	cfg    *Config
	log    zerolog.Logger
	client *substrate.Client
	prices *price.Fetcher
	stats  *taostats.Client
}

// run is the main entry point for the interactive CLI.
func run(cmd *cobra.Command, args []string) {
	if err := godotenv.Load(); err != nil {
		fmt.Println(infoStyle.Render("No .env file found, using config values only."))
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load config: %v", err)))
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	banner := figure.NewFigure("TAO", "larry3d", true)
	fmt.Println(titleStyle.Render(banner.String()))

	fmt.Println(promptStyle.Render(fmt.Sprintf("Connecting to %s ...", cfg.RPCEndpoint)))
	client, err := substrate.Dial(cfg.RPCEndpoint, cfg.FallbackEndpoints, logger)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to connect: %v", err)))
		os.Exit(1)
	}

	chain, err := client.Chain()
	if err != nil {
		chain = "unknown chain"
	}
	if block, err := client.CurrentBlock(); err == nil {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Connected to %s | Block %d", chain, block)))
	} else {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Connected to %s", chain)))
	}

	a := &app{
		cfg:    cfg,
		log:    logger,
		client: client,
		prices: price.NewFetcher(time.Duration(cfg.Price.CacheTTLSeconds)*time.Second, logger),
		stats:  taostats.NewClient(logger),
	}
	a.menuLoop()
}

var mainMenuOptions = []string{
	"Create Wallet",
	"Check Balances",
	"Wallet Stats",
	"Register (Burn)",
	"Transfer TAO",
	"Stake",
	"Unstake",
	"Subnet Info",
	"Exit",
}

func (a *app) menuLoop() {
	for {
		fmt.Println()
		menu := &survey.Select{
			Message:  promptStyle.Render("Choose an action:"),
			Options:  mainMenuOptions,
			PageSize: len(mainMenuOptions),
			Help:     "Use the arrow keys to navigate, and press Enter to select.",
		}
		var choice string
		if err := survey.AskOne(menu, &choice); err != nil {
			// Interrupt or closed stdin: leave cleanly.
			fmt.Println(infoStyle.Render("\nGoodbye!"))
			return
		}

		switch choice {
		case "Create Wallet":
			a.handleCreateWallet()
		case "Check Balances":
			a.handleCheckBalances()
		case "Wallet Stats":
			a.handleWalletStats()
		case "Register (Burn)":
			a.handleRegister()
		case "Transfer TAO":
			a.handleTransfer()
		case "Stake":
			a.handleStake()
		case "Unstake":
			a.handleUnstake()
		case "Subnet Info":
			a.handleSubnetInfo()
		case "Exit":
			fmt.Println(infoStyle.Render("\nGoodbye!"))
			return
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
