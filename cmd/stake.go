package cmd

import (
	"context"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/shopspring/decimal"

	"tao-cli/substrate"
	"tao-cli/taostats"
	"tao-cli/wallet"
)

// handleStake adds stake from a wallet's coldkey to one of its
// hotkeys on a chosen subnet.
func (a *app) handleStake() {
	w, err := a.selectSingleWallet("Stake from which wallet?")
	if err != nil || w == nil {
		return
	}
	if len(w.Hotkeys) == 0 {
		fmt.Println(warningStyle.Render("Wallet " + w.Name + " has no hotkeys to stake to."))
		return
	}
	hotkey, err := askSelect("Stake to which hotkey?", w.Hotkeys)
	if err != nil {
		return
	}
	netuid, err := a.askNetuid()
	if err != nil {
		return
	}
	amount, err := askFloat("Amount in TAO:")
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if amount <= 0 {
		fmt.Println(warningStyle.Render("Amount must be positive."))
		return
	}
	amountRao := substrate.TaoToRao(amount)

	coldkeyAddr, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	freeRao, err := a.client.FreeBalance(coldkeyAddr)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Balance query failed: %v", err)))
		return
	}
	if freeRao < amountRao {
		fmt.Println(warningStyle.Render(fmt.Sprintf(
			"Insufficient balance: have %.9f TAO, want to stake %.9f TAO.",
			substrate.RaoToTao(freeRao), amount)))
		return
	}

	ok, err := askConfirm(fmt.Sprintf("Stake %.9f TAO to %s/%s on subnet %d?", amount, w.Name, hotkey, netuid), false)
	if err != nil || !ok {
		return
	}

	coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load coldkey: %v", err)))
		return
	}
	hotkeyAddr, err := wallet.HotkeyAddress(a.cfg.Wallet.BasePath, w.Name, hotkey)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if err := a.client.AddStake(coldkey, hotkeyAddr, netuid, amountRao); err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("✗ Staking failed: %v", err)))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Staked %.9f TAO to %s/%s on subnet %d", amount, w.Name, hotkey, netuid)))
}

func (a *app) handleUnstake() {
	mode, err := askSelect("Unstake:", []string{
		"Everything across selected wallets",
		"A single position",
	})
	if err != nil {
		return
	}
	if mode == "Everything across selected wallets" {
		a.unstakeSweep()
		return
	}
	a.unstakeSingle()
}

// walletUnstake is one wallet's share of an unstake sweep: every
// distinct hotkey that holds stake, in order of first appearance, and
// the summed TAO value of its positions.
type walletUnstake struct {
	name      string
	hotkeys   []string
	positions int
	totalTAO  decimal.Decimal
}

func buildWalletUnstake(name string, entries []taostats.StakeEntry) walletUnstake {
	plan := walletUnstake{name: name, totalTAO: decimal.Zero}
	seen := make(map[string]bool)
	for _, e := range entries {
		plan.positions++
		plan.totalTAO = plan.totalTAO.Add(e.TAOValue)
		if !seen[e.Hotkey] {
			seen[e.Hotkey] = true
			plan.hotkeys = append(plan.hotkeys, e.Hotkey)
		}
	}
	return plan
}

// unstakeSweep clears every stake position across a wallet selection:
// discover positions per wallet, show the plan with totals, confirm
// once, then call unstake_all for each distinct hotkey.
func (a *app) unstakeSweep() {
	selected, err := a.selectWallets("Unstake from which wallets?")
	if err != nil || len(selected) == 0 {
		return
	}

	ctx := context.Background()
	var plans []walletUnstake
	grandTotal := decimal.Zero
	for _, w := range selected {
		coldkeyAddr, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: %v", w.Name, err)))
			continue
		}
		entries, err := a.stats.StakeEntries(ctx, coldkeyAddr)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: stake discovery failed: %v", w.Name, err)))
			continue
		}
		if len(entries) == 0 {
			fmt.Println(infoStyle.Render("Skipping " + w.Name + " (no stake positions)."))
			continue
		}
		plan := buildWalletUnstake(w.Name, entries)
		plans = append(plans, plan)
		grandTotal = grandTotal.Add(plan.totalTAO)
	}
	if len(plans) == 0 {
		fmt.Println(infoStyle.Render("Nothing staked in the selected wallets."))
		return
	}

	fmt.Println(promptStyle.Render("\nUnstake plan:"))
	for _, p := range plans {
		fmt.Printf("  %-20s %d position(s) across %d hotkey(s), %s τ\n",
			p.name, p.positions, len(p.hotkeys), p.totalTAO.StringFixed(4))
	}
	fmt.Println(amountStyle.Render(fmt.Sprintf("  Total: %s τ", grandTotal.StringFixed(4))))

	ok, err := askConfirm(fmt.Sprintf("Unstake everything from %d wallet(s)?", len(plans)), false)
	if err != nil || !ok {
		return
	}

	for _, p := range plans {
		coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, p.name)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: failed to load coldkey: %v", p.name, err)))
			continue
		}
		for _, hotkey := range p.hotkeys {
			if err := a.client.UnstakeAll(coldkey, hotkey); err != nil {
				fmt.Println(warningStyle.Render(fmt.Sprintf("✗ %s hotkey %s: %v", p.name, shortAddr(hotkey), err)))
				continue
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s: unstaked everything from hotkey %s", p.name, shortAddr(hotkey))))
		}
	}
}

// unstakeSingle picks one position of one wallet and removes either
// its full stake on that subnet or a partial alpha amount.
func (a *app) unstakeSingle() {
	w, err := a.selectSingleWallet("Unstake from which wallet?")
	if err != nil || w == nil {
		return
	}
	coldkeyAddr, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}

	ctx := context.Background()
	entries, err := a.stats.StakeEntries(ctx, coldkeyAddr)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to discover stake positions: %v", err)))
		return
	}
	if len(entries) == 0 {
		fmt.Println(infoStyle.Render("Wallet " + w.Name + " has no stake positions."))
		return
	}

	options := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.SubnetName
		if name == "" {
			name = fmt.Sprintf("subnet %d", e.Netuid)
		}
		options = append(options, fmt.Sprintf("%s | %s alpha (%s τ) | hotkey %s",
			name, e.Alpha.StringFixed(4), e.TAOValue.StringFixed(4), shortAddr(e.Hotkey)))
	}
	choice, err := askSelect("Which position?", options)
	if err != nil {
		return
	}

	coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load coldkey: %v", err)))
		return
	}
	for i, opt := range options {
		if opt == choice {
			a.unstakePosition(coldkey, entries[i])
			return
		}
	}
}

func (a *app) unstakePosition(coldkey signature.KeyringPair, entry taostats.StakeEntry) {
	mode, err := askSelect("How much?", []string{"Everything on this subnet", "A specific alpha amount"})
	if err != nil {
		return
	}

	if mode == "Everything on this subnet" {
		ok, err := askConfirm(fmt.Sprintf("Unstake all %s alpha from subnet %d?", entry.Alpha.StringFixed(4), entry.Netuid), false)
		if err != nil || !ok {
			return
		}
		if err := a.client.UnstakeSubnet(coldkey, entry.Hotkey, entry.Netuid); err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("✗ Unstaking failed: %v", err)))
			return
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Unstaked everything from subnet %d", entry.Netuid)))
		return
	}

	amount, err := askFloat(fmt.Sprintf("Alpha amount (position holds %s):", entry.Alpha.StringFixed(4)))
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	held, _ := entry.Alpha.Float64()
	if amount <= 0 || amount > held {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Amount must be between 0 and %s.", entry.Alpha.StringFixed(4))))
		return
	}
	ok, err := askConfirm(fmt.Sprintf("Unstake %.9f alpha from subnet %d?", amount, entry.Netuid), false)
	if err != nil || !ok {
		return
	}
	if err := a.client.RemoveStake(coldkey, entry.Hotkey, entry.Netuid, substrate.TaoToRao(amount)); err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("✗ Unstaking failed: %v", err)))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Unstaked %.9f alpha from subnet %d", amount, entry.Netuid)))
}
