package cmd

import (
	"errors"
	"testing"

	"tao-cli/wallet"
)

func testWallets(names ...string) []wallet.Wallet {
	wallets := make([]wallet.Wallet, len(names))
	for i, name := range names {
		wallets[i] = wallet.Wallet{Name: name, ColdkeyExists: true}
	}
	return wallets
}

func names(wallets []wallet.Wallet) []string {
	out := make([]string, len(wallets))
	for i, w := range wallets {
		out[i] = w.Name
	}
	return out
}

func TestResolveSelectionAll(t *testing.T) {
	wallets := testWallets("wallet_1", "wallet_2", "wallet_3")
	got, err := ResolveSelection("all", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("'all' must resolve to every wallet, got %v", names(got))
	}

	got, err = ResolveSelection(" ALL ", wallets)
	if err != nil || len(got) != 3 {
		t.Fatalf("'all' should be case and whitespace insensitive, got %v, %v", names(got), err)
	}
}

func TestResolveSelectionIndices(t *testing.T) {
	wallets := testWallets("wallet_1", "wallet_2", "wallet_3")
	got, err := ResolveSelection("1,3", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "wallet_1" || got[1].Name != "wallet_3" {
		t.Fatalf(`"1,3" should resolve to wallet_1 and wallet_3, got %v`, names(got))
	}
}

func TestResolveSelectionNamesAndIndices(t *testing.T) {
	wallets := testWallets("miner", "validator", "cold")
	got, err := ResolveSelection("validator, 1", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "validator" || got[1].Name != "miner" {
		t.Fatalf("unexpected resolution order: %v", names(got))
	}
}

func TestResolveSelectionDeduplicates(t *testing.T) {
	wallets := testWallets("miner", "validator")
	got, err := ResolveSelection("miner,1,miner", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "miner" {
		t.Fatalf("expected a single deduplicated wallet, got %v", names(got))
	}
}

func TestResolveSelectionPrefix(t *testing.T) {
	wallets := testWallets("miner_1", "miner_2", "validator")
	got, err := ResolveSelection("miner_", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("prefix should expand to both miners, got %v", names(got))
	}
}

func TestResolveSelectionExactNameBeatsPrefix(t *testing.T) {
	wallets := testWallets("miner", "miner_backup")
	got, err := ResolveSelection("miner", wallets)
	if err != nil {
		t.Fatalf("ResolveSelection returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "miner" {
		t.Fatalf("exact match must win over prefix expansion, got %v", names(got))
	}
}

func TestResolveSelectionUnknownName(t *testing.T) {
	wallets := testWallets("wallet_1", "wallet_2", "wallet_3")
	_, err := ResolveSelection("wallet_9", wallets)
	var invalid *InvalidSelectionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
	if invalid.Token != "wallet_9" {
		t.Fatalf("error must name the offending token, got %q", invalid.Token)
	}
}

func TestResolveSelectionOutOfRangeIndex(t *testing.T) {
	wallets := testWallets("wallet_1", "wallet_2")
	for _, sel := range []string{"0", "3", "-1"} {
		_, err := ResolveSelection(sel, wallets)
		var invalid *InvalidSelectionError
		if !errors.As(err, &invalid) {
			t.Fatalf("selection %q: expected InvalidSelectionError, got %v", sel, err)
		}
		if invalid.Token != sel {
			t.Fatalf("selection %q: error names %q", sel, invalid.Token)
		}
	}
}

func TestResolveSelectionOneBadTokenFailsAll(t *testing.T) {
	wallets := testWallets("wallet_1", "wallet_2")
	_, err := ResolveSelection("wallet_1,nope", wallets)
	var invalid *InvalidSelectionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
	if invalid.Token != "nope" {
		t.Fatalf("expected offending token 'nope', got %q", invalid.Token)
	}
}

func TestResolveSelectionEmpty(t *testing.T) {
	wallets := testWallets("wallet_1")
	for _, sel := range []string{"", "  ", ",,"} {
		if _, err := ResolveSelection(sel, wallets); err == nil {
			t.Fatalf("selection %q should fail", sel)
		}
	}
}
