package cmd

import (
	"fmt"

	"github.com/vedhavyas/go-subkey/v2"

	"tao-cli/substrate"
	"tao-cli/wallet"
)

const (
	// Collect mode leaves this much behind so the source account
	// stays alive and can pay future fees.
	defaultReserveTao = 0.01

	// Balances below this are not worth a transfer fee.
	dustThresholdTao = 0.0001
)

func (a *app) handleTransfer() {
	mode, err := askSelect("Transfer mode:", []string{
		"Single (one wallet to one address)",
		"Batch (one wallet to several addresses)",
		"Collect (many wallets to one address)",
	})
	if err != nil {
		return
	}
	switch mode {
	case "Single (one wallet to one address)":
		a.transferSingle()
	case "Batch (one wallet to several addresses)":
		a.transferBatch()
	case "Collect (many wallets to one address)":
		a.transferCollect()
	}
}

func (a *app) transferSingle() {
	w, err := a.selectSingleWallet("Send from which wallet?")
	if err != nil || w == nil {
		return
	}
	dest, err := a.askDestination()
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

	source, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	freeRao, err := a.client.FreeBalance(source)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Balance query failed: %v", err)))
		return
	}
	if freeRao < amountRao {
		fmt.Println(warningStyle.Render(fmt.Sprintf(
			"Insufficient balance: have %.9f TAO, want to send %.9f TAO.",
			substrate.RaoToTao(freeRao), amount)))
		return
	}
	if ed, err := a.client.ExistentialDeposit(); err == nil && freeRao-amountRao < ed {
		fmt.Println(warningStyle.Render(fmt.Sprintf(
			"This would leave less than the existential deposit (%.9f TAO); the keep-alive transfer will be rejected by the chain.",
			substrate.RaoToTao(ed))))
	}

	ok, err := askConfirm(fmt.Sprintf("Send %.9f TAO from %s to %s?", amount, w.Name, shortAddr(dest)), false)
	if err != nil || !ok {
		return
	}
	coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, w.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load coldkey: %v", err)))
		return
	}
	if err := a.client.TransferKeepAlive(coldkey, dest, amountRao); err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("✗ Transfer failed: %v", err)))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Sent %.9f TAO to %s", amount, shortAddr(dest))))
}

// transferBatch collects destination/amount pairs until a blank line,
// prechecks the summed total against the source balance, then submits
// each transfer after a single confirmation.
func (a *app) transferBatch() {
	source, err := a.selectSingleWallet("Send from which wallet?")
	if err != nil || source == nil {
		return
	}

	type payout struct {
		dest      string
		amountRao uint64
	}
	var payouts []payout
	var totalRao uint64
	for {
		raw, err := askInput(fmt.Sprintf("Destination %d (blank to finish):", len(payouts)+1), "")
		if err != nil {
			return
		}
		if raw == "" {
			break
		}
		dest, err := a.resolveDestination(raw)
		if err != nil {
			continue
		}
		amount, err := askFloat("Amount in TAO:")
		if err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			continue
		}
		if amount <= 0 {
			fmt.Println(warningStyle.Render("Amount must be positive."))
			continue
		}
		amountRao := substrate.TaoToRao(amount)
		payouts = append(payouts, payout{dest: dest, amountRao: amountRao})
		totalRao += amountRao
	}
	if len(payouts) == 0 {
		fmt.Println(infoStyle.Render("No transfers entered."))
		return
	}

	sourceAddr, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, source.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	freeRao, err := a.client.FreeBalance(sourceAddr)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Balance query failed: %v", err)))
		return
	}
	if freeRao < totalRao {
		fmt.Println(warningStyle.Render(fmt.Sprintf(
			"Insufficient balance: the batch needs %.9f TAO, wallet %s has %.9f TAO.",
			substrate.RaoToTao(totalRao), source.Name, substrate.RaoToTao(freeRao))))
		return
	}

	fmt.Println(promptStyle.Render("\nBatch summary:"))
	for _, p := range payouts {
		fmt.Printf("  %s  <-  %.9f TAO\n", shortAddr(p.dest), substrate.RaoToTao(p.amountRao))
	}
	ok, err := askConfirm(fmt.Sprintf("Send %d transfer(s), %.9f TAO total, from %s?",
		len(payouts), substrate.RaoToTao(totalRao), source.Name), false)
	if err != nil || !ok {
		return
	}

	coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, source.Name)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Failed to load coldkey: %v", err)))
		return
	}
	for _, p := range payouts {
		if err := a.client.TransferKeepAlive(coldkey, p.dest, p.amountRao); err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("✗ %s: %v", shortAddr(p.dest), err)))
			continue
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Sent %.9f TAO to %s", substrate.RaoToTao(p.amountRao), shortAddr(p.dest))))
	}
}

// transferCollect sweeps the free balance of each selected wallet to
// one destination, leaving a small reserve behind.
func (a *app) transferCollect() {
	sources, err := a.selectWallets("Collect from which wallets?")
	if err != nil || len(sources) == 0 {
		return
	}
	dest, err := a.askDestination()
	if err != nil {
		return
	}
	raw, err := askInput("TAO to leave in each wallet:", fmt.Sprintf("%.2f", defaultReserveTao))
	if err != nil {
		return
	}
	reserve, err := parseAmount(raw)
	if err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if reserve < 0 {
		fmt.Println(warningStyle.Render("Reserve cannot be negative."))
		return
	}
	reserveRao := substrate.TaoToRao(reserve)
	dustRao := substrate.TaoToRao(dustThresholdTao)

	// Build the plan from live balances first so the confirmation
	// shows exactly what will move.
	type sweep struct {
		walletName string
		freeRao    uint64
		sendRao    uint64
	}
	var plan []sweep
	var totalRao uint64
	for _, w := range sources {
		source, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, w.Name)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: %v", w.Name, err)))
			continue
		}
		if source == dest {
			fmt.Println(infoStyle.Render("Skipping " + w.Name + " (destination wallet)."))
			continue
		}
		freeRao, err := a.client.FreeBalance(source)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: balance query failed: %v", w.Name, err)))
			continue
		}
		sendRao, skip := collectSendable(freeRao, reserveRao, dustRao)
		if skip != "" {
			fmt.Println(infoStyle.Render(fmt.Sprintf("Skipping %s (%.9f TAO free, %s).", w.Name, substrate.RaoToTao(freeRao), skip)))
			continue
		}
		plan = append(plan, sweep{walletName: w.Name, freeRao: freeRao, sendRao: sendRao})
		totalRao += sendRao
	}
	if len(plan) == 0 {
		fmt.Println(infoStyle.Render("Nothing to collect."))
		return
	}

	fmt.Println(promptStyle.Render("\nCollection plan:"))
	for _, s := range plan {
		fmt.Printf("  %-20s %16.9f TAO free  ->  send %16.9f TAO\n",
			s.walletName, substrate.RaoToTao(s.freeRao), substrate.RaoToTao(s.sendRao))
	}
	fmt.Println(amountStyle.Render(fmt.Sprintf("  Total: %.9f TAO  ->  %s", substrate.RaoToTao(totalRao), shortAddr(dest))))

	ok, err := askConfirm(fmt.Sprintf("Collect %.9f TAO from %d wallet(s), leaving %.4f TAO each?",
		substrate.RaoToTao(totalRao), len(plan), reserve), false)
	if err != nil || !ok {
		return
	}

	var collected float64
	for _, s := range plan {
		coldkey, err := wallet.LoadColdkey(a.cfg.Wallet.BasePath, s.walletName)
		if err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("%s: failed to load coldkey: %v", s.walletName, err)))
			continue
		}
		// A zero reserve is a full sweep; keep-alive would reject it.
		send := a.client.TransferKeepAlive
		if reserveRao == 0 {
			send = a.client.TransferAllowDeath
		}
		if err := send(coldkey, dest, s.sendRao); err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("✗ %s: %v", s.walletName, err)))
			continue
		}
		sent := substrate.RaoToTao(s.sendRao)
		collected += sent
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Collected %.9f TAO from %s", sent, s.walletName)))
	}
	fmt.Println(amountStyle.Render(fmt.Sprintf("Collected %.9f TAO in total.", collected)))
}

// collectSendable computes how much of a free balance a sweep can
// move. A non-empty skip reason means the wallet stays untouched.
func collectSendable(freeRao, reserveRao, dustRao uint64) (sendRao uint64, skip string) {
	if freeRao <= reserveRao {
		return 0, "at or below reserve"
	}
	sendRao = freeRao - reserveRao
	if sendRao < dustRao {
		return 0, "sweepable amount below dust threshold"
	}
	return sendRao, ""
}

// askDestination accepts either a raw SS58 address or the name of a
// local wallet whose coldkey address is used.
func (a *app) askDestination() (string, error) {
	raw, err := askRequired("Destination (SS58 address or local wallet name):")
	if err != nil {
		return "", err
	}
	return a.resolveDestination(raw)
}

func (a *app) resolveDestination(raw string) (string, error) {
	if _, _, err := subkey.SS58Decode(raw); err == nil {
		return raw, nil
	}
	address, err := wallet.ColdkeyAddress(a.cfg.Wallet.BasePath, raw)
	if err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("%q is neither a valid SS58 address nor a local wallet.", raw)))
		return "", fmt.Errorf("invalid destination %q", raw)
	}
	fmt.Println(infoStyle.Render("Using coldkey of wallet " + raw + ": " + address))
	return address, nil
}
