package cmd

import (
	"context"
	"fmt"

	"tao-cli/substrate"
	"tao-cli/wallet"
)

// handleRegister burn-registers one or more hotkeys on a subnet. The
// coldkey pays the burn cost and signs every extrinsic.
func (a *app) handleRegister() {
	w, err := a.selectSingleWallet("Register hotkeys from which wallet?")
	if err != nil || w == nil {
		return
	}
	hotkeys, err := selectHotkeys(w)
	if err != nil || len(hotkeys) == 0 {
		return
	}

	netuid, err := a.askNetuid()
	if err != nil {
		return
	}

	burnRao, err := a.client.BurnCost(netuid)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to read burn cost: %v", err)))
		return
	}
	burn := substrate.RaoToTao(burnRao)

	ctx := context.Background()
	usd, haveUSD := 0.0, false
	if a.cfg.Display.ShowUSDPrices {
		usd, haveUSD = a.prices.TAOPrice(ctx)
	}
	costLine := fmt.Sprintf("Burn cost on subnet %d: %.9f TAO per hotkey", netuid, burn)
	if haveUSD {
		costLine += fmt.Sprintf(" ($%.2f)", burn*usd)
	}
	fmt.Println(amountStyle.Render(costLine))

	if allowed, err := a.client.RegistrationAllowed(netuid); err == nil && !allowed {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Registration on subnet %d is currently closed.", netuid)))
		return
	}

	// Drop hotkeys that already hold a UID before counting the cost.
	var pending []string
	for _, hk := range hotkeys {
		hotkeyAddr, err := wallet.HotkeyAddress(a.cfg.Wallet.BasePath, w.Name, hk)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: %v", hk, err)))
			continue
		}
		if uid, registered, err := a.client.UID(netuid, hotkeyAddr); err == nil && registered {
			fmt.Println(infoStyle.Render(fmt.Sprintf("Hotkey %s is already registered with UID %d, skipping.", hk, uid)))
			continue
		}
		pending = append(pending, hk)
	}
	if len(pending) == 0 {
		fmt.Println(infoStyle.Render("Nothing to register."))
		return
	}

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
	needRao := burnRao * uint64(len(pending))
	if freeRao < needRao {
		fmt.Println(warningStyle.Render(fmt.Sprintf(
			"Insufficient balance: need %.9f TAO for %d registrations, have %.9f TAO.",
			substrate.RaoToTao(needRao), len(pending), substrate.RaoToTao(freeRao))))
		return
	}

	ok, err := askConfirm(fmt.Sprintf("Register %d hotkey(s) on subnet %d for %.9f TAO total?",
		len(pending), netuid, substrate.RaoToTao(needRao)), false)
	if err != nil || !ok {
		return
	}

	coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load coldkey: %v", err)))
		return
	}

	for _, hk := range pending {
		hotkeyAddr, err := wallet.HotkeyAddress(a.cfg.Wallet.BasePath, w.Name, hk)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: %v", hk, err)))
			continue
		}
		fmt.Println(promptStyle.Render(fmt.Sprintf("Registering %s ...", hk)))
		uid, err := a.client.BurnRegister(coldkey, hotkeyAddr, netuid)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("✗ %s: %v", hk, err)))
			continue
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s registered with UID %d", hk, uid)))
	}
}

// askNetuid prompts for a subnet id and verifies it exists on chain.
func (a *app) askNetuid() (uint16, error) {
	n, err := askInt("Subnet (netuid):", 0)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 65535 {
		fmt.Println(warningStyle.Render("Netuid must be between 0 and 65535."))
		return 0, fmt.Errorf("netuid out of range: %d", n)
	}
	netuid := uint16(n)
	exists, err := a.client.SubnetExists(netuid)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to check subnet: %v", err)))
		return 0, err
	}
	if !exists {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Subnet %d does not exist.", netuid)))
		return 0, fmt.Errorf("subnet %d does not exist", netuid)
	}
	return netuid, nil
}
