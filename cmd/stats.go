package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tao-cli/wallet"
)

// handleWalletStats shows the per-subnet stake breakdown for the
// selected wallets, sourced from the Taostats indexer.
func (a *app) handleWalletStats() {
	selected, err := a.selectWallets("Show stats for which wallets?")
	if err != nil || len(selected) == 0 {
		return
	}

	ctx := context.Background()
	usd, haveUSD := 0.0, false
	if a.cfg.Display.ShowUSDPrices {
		usd, haveUSD = a.prices.TAOPrice(ctx)
	}

	grandFree := decimal.Zero
	grandStaked := decimal.Zero
	for _, w := range selected {
		address, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: %v", w.Name, err)))
			continue
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("\n%s  (%s)", w.Name, shortAddr(address))))

		account, err := a.stats.Account(ctx, address)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("  Indexer lookup failed: %v", err)))
			continue
		}
		grandFree = grandFree.Add(account.FreeTAO)
		grandStaked = grandStaked.Add(account.StakedTAO)

		fmt.Printf("  Free: %s τ   Staked: %s τ   Total: %s τ%s\n",
			account.FreeTAO.StringFixed(4),
			account.StakedTAO.StringFixed(4),
			account.TotalTAO.StringFixed(4),
			usdSuffix(account.TotalTAO, usd, haveUSD))

		entries, err := a.stats.StakeEntries(ctx, address)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("  Stake breakdown failed: %v", err)))
			continue
		}
		if len(entries) == 0 {
			fmt.Println(infoStyle.Render("  No stake positions."))
			continue
		}
		fmt.Println(promptStyle.Render(fmt.Sprintf("  %-7s %-24s %14s %14s %4s  %s", "Netuid", "Subnet", "Alpha", "Value τ", "Reg", "Hotkey")))
		for _, e := range entries {
			name := e.SubnetName
			if name == "" {
				name = fmt.Sprintf("subnet %d", e.Netuid)
			}
			mark := "-"
			if _, registered, err := a.client.UID(e.Netuid, e.Hotkey); err == nil && registered {
				mark = "✓"
			}
			fmt.Printf("  %-7d %-24s %14s %14s %4s  %s\n",
				e.Netuid, name, e.Alpha.StringFixed(4), e.TAOValue.StringFixed(4), mark, shortAddr(e.Hotkey))
		}
	}

	grandTotal := grandFree.Add(grandStaked)
	fmt.Println(infoStyle.Render("\n" + strings.Repeat("-", 60)))
	fmt.Println(amountStyle.Render(fmt.Sprintf("TOTAL  Free: %s τ   Staked: %s τ   Total: %s τ%s",
		grandFree.StringFixed(4), grandStaked.StringFixed(4), grandTotal.StringFixed(4),
		usdSuffix(grandTotal, usd, haveUSD))))
}

// usdSuffix renders "  ($123.45)" when a USD price is available.
func usdSuffix(tao decimal.Decimal, usd float64, haveUSD bool) string {
	if !haveUSD {
		return ""
	}
	value, _ := tao.Float64()
	return fmt.Sprintf("  ($%.2f)", value*usd)
}

// shortAddr abbreviates an SS58 address for table output.
func shortAddr(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
