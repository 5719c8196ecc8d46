package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"tao-cli/wallet"
)

// Survey wrappers. Every prompt returns the user's answer or the
// interrupt error so handlers can bail back to the main menu.

func askInput(msg, def string) (string, error) {
	var out string
	prompt := &survey.Input{Message: promptStyle.Render(msg), Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func askRequired(msg string) (string, error) {
	var out string
	prompt := &survey.Input{Message: promptStyle.Render(msg)}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func askInt(msg string, def int) (int, error) {
	raw, err := askInput(msg, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", raw)
	}
	return n, nil
}

func askFloat(msg string) (float64, error) {
	raw, err := askRequired(msg)
	if err != nil {
		return 0, err
	}
	return parseAmount(raw)
}

// parseAmount parses a TAO or alpha amount. NaN and infinities parse
// fine with strconv but slip past sign checks, so they are rejected
// here before any RAO conversion.
func parseAmount(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite amount: %q", raw)
	}
	return f, nil
}

func askConfirm(msg string, def bool) (bool, error) {
	out := def
	prompt := &survey.Confirm{Message: promptStyle.Render(msg), Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}

func askSelect(msg string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message:  promptStyle.Render(msg),
		Options:  options,
		PageSize: 12,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

// listWallets scans the configured base path and prints a numbered
// listing. Returns nil with no error when the directory holds nothing.
func (a *app) listWallets() ([]wallet.Wallet, error) {
	wallets, err := wallet.Scan(a.cfg.Wallet.BasePath)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		fmt.Println(warningStyle.Render("No wallets found in " + a.cfg.Wallet.BasePath))
		return nil, nil
	}
	displayWalletList(wallets)
	return wallets, nil
}

func displayWalletList(wallets []wallet.Wallet) {
	fmt.Println(promptStyle.Render("\nAvailable wallets:"))
	for i, w := range wallets {
		fmt.Printf("  %2d. %s (%d hotkeys)\n", i+1, w.Name, len(w.Hotkeys))
	}
}

// selectWallets prompts for a wallet selection expression and resolves
// it. Returns nil with no error when no wallets exist.
func (a *app) selectWallets(msg string) ([]wallet.Wallet, error) {
	wallets, err := a.listWallets()
	if err != nil || wallets == nil {
		return nil, err
	}
	raw, err := askRequired(msg + ` ("all", names, numbers, or prefixes; comma separated)`)
	if err != nil {
		return nil, err
	}
	selected, err := ResolveSelection(raw, wallets)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return nil, nil
	}
	return selected, nil
}

// selectSingleWallet picks exactly one wallet from a menu.
func (a *app) selectSingleWallet(msg string) (*wallet.Wallet, error) {
	wallets, err := wallet.Scan(a.cfg.Wallet.BasePath)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		fmt.Println(warningStyle.Render("No wallets found in " + a.cfg.Wallet.BasePath))
		return nil, nil
	}
	names := make([]string, len(wallets))
	for i, w := range wallets {
		names[i] = w.Name
	}
	name, err := askSelect(msg, names)
	if err != nil {
		return nil, err
	}
	for i := range wallets {
		if wallets[i].Name == name {
			return &wallets[i], nil
		}
	}
	return nil, fmt.Errorf("wallet %q disappeared during selection", name)
}

// selectHotkeys offers the wallet's hotkeys plus an "all" entry and
// returns the chosen hotkey names.
func selectHotkeys(w *wallet.Wallet) ([]string, error) {
	if len(w.Hotkeys) == 0 {
		fmt.Println(warningStyle.Render("Wallet " + w.Name + " has no hotkeys."))
		return nil, nil
	}
	options := append([]string{"all"}, w.Hotkeys...)
	choice, err := askSelect("Which hotkey?", options)
	if err != nil {
		return nil, err
	}
	if choice == "all" {
		return append([]string(nil), w.Hotkeys...), nil
	}
	return []string{choice}, nil
}
