package cmd

import (
	"fmt"

	"tao-cli/wallet"
)

const defaultHotkeyCount = 20

// handleCreateWallet creates a fresh coldkey plus a batch of hotkeys,
// or appends hotkeys to a wallet that already exists on disk.
func (a *app) handleCreateWallet() {
	mode, err := askSelect("What do you want to create?", []string{
		"New wallet (coldkey + hotkeys)",
		"Add hotkeys to an existing wallet",
	})
	if err != nil {
		return
	}

	if mode == "Add hotkeys to an existing wallet" {
		a.addHotkeys()
		return
	}

	name, err := askRequired("Wallet name:")
	if err != nil {
		return
	}
	count, err := askInt("How many hotkeys?", defaultHotkeyCount)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if count < 0 {
		fmt.Println(warningStyle.Render("Hotkey count cannot be negative."))
		return
	}

	ok, err := askConfirm("Keys are stored unencrypted on disk. Continue?", true)
	if err != nil || !ok {
		return
	}

	address, mnemonic, err := wallet.CreateColdkey(a.cfg.Wallet.BasePath, name, 12)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to create wallet: %v", err)))
		return
	}

	fmt.Println(successStyle.Render("\n✓ Created wallet " + name))
	fmt.Println(promptStyle.Render("Coldkey address: ") + amountStyle.Render(address))
	fmt.Println(warningStyle.Render("\nWrite down the mnemonic below. It is shown only once and is the only way to recover the coldkey."))
	fmt.Println(amountStyle.Render("  " + mnemonic))

	if count > 0 {
		start, end, err := wallet.CreateHotkeys(a.cfg.Wallet.BasePath, name, count, 12)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("Coldkey saved but hotkey creation failed: %v", err)))
			return
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created hotkeys %d through %d", start, end)))
	}
}

func (a *app) addHotkeys() {
	w, err := a.selectSingleWallet("Add hotkeys to which wallet?")
	if err != nil || w == nil {
		return
	}
	count, err := askInt("How many hotkeys to add?", 5)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if count <= 0 {
		fmt.Println(warningStyle.Render("Nothing to do."))
		return
	}
	start, end, err := wallet.CreateHotkeys(a.cfg.Wallet.BasePath, w.Name, count, 12)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to create hotkeys: %v", err)))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Added hotkeys %d through %d to %s", start, end, w.Name)))
}
