package cmd

import (
	"context"
	"fmt"

	"tao-cli/substrate"
)

// handleSubnetInfo prints one subnet's registration and pool state.
// Chain values are authoritative; pool data comes from the indexer
// and is skipped when unreachable.
func (a *app) handleSubnetInfo() {
	netuid, err := a.askNetuid()
	if err != nil {
		return
	}

	ctx := context.Background()
	usd, haveUSD := 0.0, false
	if a.cfg.Display.ShowUSDPrices {
		usd, haveUSD = a.prices.TAOPrice(ctx)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("\nSubnet %d", netuid)))

	if burnRao, err := a.client.BurnCost(netuid); err == nil {
		burn := substrate.RaoToTao(burnRao)
		line := fmt.Sprintf("  Burn cost:           %.9f TAO", burn)
		if haveUSD {
			line += fmt.Sprintf(" ($%.2f)", burn*usd)
		}
		fmt.Println(amountStyle.Render(line))
	} else {
		fmt.Println(warningStyle.Render(fmt.Sprintf("  Burn cost unavailable: %v", err)))
	}

	if allowed, err := a.client.RegistrationAllowed(netuid); err == nil {
		state := "open"
		if !allowed {
			state = "closed"
		}
		fmt.Printf("  Registration:        %s\n", state)
	}
	if count, err := a.client.NeuronCount(netuid); err == nil {
		if max, err := a.client.MaxNeurons(netuid); err == nil {
			fmt.Printf("  Neurons:             %d / %d\n", count, max)
		} else {
			fmt.Printf("  Neurons:             %d\n", count)
		}
	}
	if tempo, err := a.client.Tempo(netuid); err == nil {
		fmt.Printf("  Tempo:               %d blocks\n", tempo)
	}

	pool, err := a.stats.SubnetPool(ctx, netuid)
	if err != nil {
		fmt.Println(infoStyle.Render(fmt.Sprintf("  Pool data unavailable: %v", err)))
		return
	}
	if pool.Name != "" {
		fmt.Printf("  Name:                %s (%s)\n", pool.Name, pool.Symbol)
	}
	alphaPrice := pool.PriceTAO
	line := fmt.Sprintf("  Alpha price:         %s TAO", alphaPrice.StringFixed(9))
	if haveUSD {
		value, _ := alphaPrice.Float64()
		line += fmt.Sprintf(" ($%.4f)", value*usd)
	}
	fmt.Println(line)
	fmt.Printf("  Pool TAO in:         %s τ\n", pool.TaoIn.StringFixed(4))
	fmt.Printf("  Pool alpha out:      %s\n", pool.AlphaOut.StringFixed(4))
}
