package wallet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestScan(t *testing.T) {
	base := t.TempDir()

	writeFixture(t, filepath.Join(base, "miner", "coldkeypub.txt"), `{"ss58Address":"5F"}`)
	writeFixture(t, filepath.Join(base, "miner", "hotkeys", "1"), `{}`)
	writeFixture(t, filepath.Join(base, "miner", "hotkeys", "2"), `{}`)
	writeFixture(t, filepath.Join(base, "miner", "hotkeys", "2pub.txt"), `{}`)
	writeFixture(t, filepath.Join(base, "validator", "coldkey"), `{}`)
	writeFixture(t, filepath.Join(base, "stray-file"), "ignored")

	wallets, err := Scan(base)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d: %+v", len(wallets), wallets)
	}
	if wallets[0].Name != "miner" || wallets[1].Name != "validator" {
		t.Fatalf("unexpected wallet order: %+v", wallets)
	}
	if !wallets[0].ColdkeyExists || !wallets[1].ColdkeyExists {
		t.Fatalf("expected coldkeys to be detected: %+v", wallets)
	}
	if len(wallets[0].Hotkeys) != 2 || wallets[0].Hotkeys[0] != "1" || wallets[0].Hotkeys[1] != "2" {
		t.Fatalf("expected hotkeys [1 2] excluding pub files, got %+v", wallets[0].Hotkeys)
	}
	if len(wallets[1].Hotkeys) != 0 {
		t.Fatalf("expected no hotkeys for validator, got %+v", wallets[1].Hotkeys)
	}
}

func TestScanMissingBasePath(t *testing.T) {
	wallets, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Scan of missing dir should not error: %v", err)
	}
	if wallets != nil {
		t.Fatalf("expected nil wallet list, got %+v", wallets)
	}
}

func TestCreateColdkeyAndAddress(t *testing.T) {
	base := t.TempDir()

	addr, mnemonic, err := CreateColdkey(base, "miner", 12)
	if err != nil {
		t.Fatalf("CreateColdkey returned error: %v", err)
	}
	if !strings.HasPrefix(addr, "5") {
		t.Fatalf("unexpected ss58 address: %s", addr)
	}
	if got := len(strings.Fields(mnemonic)); got != 12 {
		t.Fatalf("expected 12-word mnemonic, got %d words", got)
	}

	// The pub file must resolve to the same address without any secret.
	pubAddr, err := ColdkeyAddress(base, "miner")
	if err != nil {
		t.Fatalf("ColdkeyAddress returned error: %v", err)
	}
	if pubAddr != addr {
		t.Fatalf("pub address %s != created address %s", pubAddr, addr)
	}

	if _, _, err := CreateColdkey(base, "miner", 12); err == nil {
		t.Fatalf("expected error creating duplicate wallet")
	}
}

func TestCreateHotkeysNumbering(t *testing.T) {
	base := t.TempDir()
	if _, _, err := CreateColdkey(base, "miner", 12); err != nil {
		t.Fatalf("CreateColdkey returned error: %v", err)
	}

	start, end, err := CreateHotkeys(base, "miner", 3, 12)
	if err != nil {
		t.Fatalf("CreateHotkeys returned error: %v", err)
	}
	if start != 1 || end != 3 {
		t.Fatalf("expected hotkeys 1-3, got %d-%d", start, end)
	}

	start, end, err = CreateHotkeys(base, "miner", 2, 12)
	if err != nil {
		t.Fatalf("CreateHotkeys returned error: %v", err)
	}
	if start != 4 || end != 5 {
		t.Fatalf("expected continuation 4-5, got %d-%d", start, end)
	}

	wallets, err := Scan(base)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(wallets[0].Hotkeys) != 5 {
		t.Fatalf("expected 5 hotkeys, got %+v", wallets[0].Hotkeys)
	}
}

func TestLoadColdkeyMatchesAddress(t *testing.T) {
	base := t.TempDir()
	addr, _, err := CreateColdkey(base, "miner", 12)
	if err != nil {
		t.Fatalf("CreateColdkey returned error: %v", err)
	}

	kp, err := LoadColdkey(base, "miner")
	if err != nil {
		t.Fatalf("LoadColdkey returned error: %v", err)
	}
	if kp.Address != addr {
		t.Fatalf("loaded keypair address %s != %s", kp.Address, addr)
	}
}

func TestHotkeyAddress(t *testing.T) {
	base := t.TempDir()
	if _, _, err := CreateColdkey(base, "miner", 12); err != nil {
		t.Fatalf("CreateColdkey returned error: %v", err)
	}
	if _, _, err := CreateHotkeys(base, "miner", 1, 12); err != nil {
		t.Fatalf("CreateHotkeys returned error: %v", err)
	}

	addr, err := HotkeyAddress(base, "miner", "1")
	if err != nil {
		t.Fatalf("HotkeyAddress returned error: %v", err)
	}
	if !strings.HasPrefix(addr, "5") {
		t.Fatalf("unexpected hotkey address: %s", addr)
	}

	kp, err := LoadHotkey(base, "miner", "1")
	if err != nil {
		t.Fatalf("LoadHotkey returned error: %v", err)
	}
	if kp.Address != addr {
		t.Fatalf("hotkey keypair address %s != %s", kp.Address, addr)
	}
}
