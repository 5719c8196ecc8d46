package cmd

import (
	"testing"

	"github.com/shopspring/decimal"

	"tao-cli/taostats"
)

func TestBuildWalletUnstake(t *testing.T) {
	entries := []taostats.StakeEntry{
		{Hotkey: "5Hot1", Netuid: 8, Alpha: decimal.NewFromInt(3), TAOValue: decimal.NewFromFloat(1.2)},
		{Hotkey: "5Hot2", Netuid: 1, Alpha: decimal.NewFromInt(10), TAOValue: decimal.NewFromFloat(0.5)},
		{Hotkey: "5Hot1", Netuid: 0, Alpha: decimal.NewFromInt(2), TAOValue: decimal.NewFromFloat(2.0)},
	}

	plan := buildWalletUnstake("wallet_1", entries)

	if plan.name != "wallet_1" {
		t.Fatalf("unexpected wallet name %q", plan.name)
	}
	if plan.positions != 3 {
		t.Fatalf("expected 3 positions, got %d", plan.positions)
	}
	// One unstake_all per distinct hotkey, first-appearance order.
	if len(plan.hotkeys) != 2 || plan.hotkeys[0] != "5Hot1" || plan.hotkeys[1] != "5Hot2" {
		t.Fatalf("unexpected hotkeys %v", plan.hotkeys)
	}
	if !plan.totalTAO.Equal(decimal.NewFromFloat(3.7)) {
		t.Fatalf("expected 3.7 TAO total, got %s", plan.totalTAO)
	}
}

func TestBuildWalletUnstakeEmpty(t *testing.T) {
	plan := buildWalletUnstake("wallet_2", nil)
	if plan.positions != 0 || len(plan.hotkeys) != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
	if !plan.totalTAO.IsZero() {
		t.Fatalf("expected zero total, got %s", plan.totalTAO)
	}
}
