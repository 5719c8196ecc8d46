package cmd

import (
	"context"
	"fmt"
	"strings"

	"tao-cli/substrate"
	"tao-cli/wallet"
)

// handleCheckBalances prints a free/staked/total table for every
// wallet under the base path. Free balances come from the chain;
// staked balances come from the Taostats indexer and degrade to a
// dash when it is unreachable.
func (a *app) handleCheckBalances() {
	wallets, err := wallet.Scan(a.cfg.Wallet.BasePath)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to scan wallets: %v", err)))
		return
	}
	if len(wallets) == 0 {
		fmt.Println(warningStyle.Render("No wallets found in " + a.cfg.Wallet.BasePath))
		return
	}

	ctx := context.Background()
	usd, haveUSD := 0.0, false
	if a.cfg.Display.ShowUSDPrices {
		usd, haveUSD = a.prices.TAOPrice(ctx)
	}

	header := fmt.Sprintf("%-20s %16s %16s %16s", "Wallet", "Free τ", "Staked τ", "Total τ")
	if haveUSD {
		header += fmt.Sprintf(" %14s", "Total $")
	}
	fmt.Println(promptStyle.Render("\n" + header))
	fmt.Println(infoStyle.Render(strings.Repeat("-", len(header))))

	var totalFree, totalStaked float64
	statsDown := false
	for _, w := range wallets {
		if !w.ColdkeyExists {
			fmt.Printf("%-20s %s\n", w.Name, infoStyle.Render("no coldkey"))
			continue
		}
		address, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
		if err != nil {
			fmt.Printf("%-20s %s\n", w.Name, warningStyle.Render(err.Error()))
			continue
		}
		freeRao, err := a.client.FreeBalance(address)
		if err != nil {
			fmt.Printf("%-20s %s\n", w.Name, warningStyle.Render(fmt.Sprintf("balance query failed: %v", err)))
			continue
		}
		free := substrate.RaoToTao(freeRao)
		totalFree += free

		stakedCol, totalCol := "-", "-"
		total := free
		if account, err := a.stats.Account(ctx, address); err == nil {
			staked, _ := account.StakedTAO.Float64()
			totalStaked += staked
			total = free + staked
			stakedCol = fmt.Sprintf("%.4f", staked)
			totalCol = fmt.Sprintf("%.4f", total)
		} else {
			statsDown = true
			a.log.Debug().Err(err).Str("wallet", w.Name).Msg("taostats account lookup failed")
		}

		row := fmt.Sprintf("%-20s %16.4f %16s %16s", w.Name, free, stakedCol, totalCol)
		if haveUSD {
			row += fmt.Sprintf(" %14.2f", total*usd)
		}
		fmt.Println(row)
	}

	fmt.Println(infoStyle.Render(strings.Repeat("-", len(header))))
	totalRow := fmt.Sprintf("%-20s %16.4f %16.4f %16.4f", "TOTAL", totalFree, totalStaked, totalFree+totalStaked)
	if haveUSD {
		totalRow += fmt.Sprintf(" %14.2f", (totalFree+totalStaked)*usd)
	}
	fmt.Println(amountStyle.Render(totalRow))

	if haveUSD {
		fmt.Println(infoStyle.Render(fmt.Sprintf("TAO price: $%.2f", usd)))
	} else if a.cfg.Display.ShowUSDPrices {
		fmt.Println(infoStyle.Render("USD prices unavailable, showing TAO only."))
	}
	if statsDown {
		fmt.Println(infoStyle.Render("Staked balances unavailable for some wallets (indexer unreachable)."))
	}
}
