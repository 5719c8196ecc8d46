// Package wallet manages the on-disk wallet directory layout shared with the
// Bittensor wallet SDK: one directory per coldkey holding a keyfile, a public
// coldkeypub.txt, and a hotkeys/ subdirectory with one keyfile per hotkey.
package wallet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/tyler-smith/go-bip39"
	"github.com/vedhavyas/go-subkey/v2/sr25519"
)

// SS58Format is the Bittensor network prefix.
const SS58Format = 42

const (
	coldkeyFileName    = "coldkey"
	coldkeyPubFileName = "coldkeypub.txt"
	hotkeysDirName     = "hotkeys"
)

// ExpandPath expands a leading ~ in a wallet base path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// Scan lists every wallet directory under basePath, sorted by name.
// A missing base path is not an error; it just means no wallets yet.
func Scan(basePath string) ([]Wallet, error) {
	entries, err := os.ReadDir(basePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read wallets directory: %w", err)
	}

	var wallets []Wallet
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(basePath, entry.Name())
		w := Wallet{Name: entry.Name()}
		if fileExists(filepath.Join(dir, coldkeyFileName)) || fileExists(filepath.Join(dir, coldkeyPubFileName)) {
			w.ColdkeyExists = true
		}
		w.Hotkeys = listHotkeys(filepath.Join(dir, hotkeysDirName))
		wallets = append(wallets, w)
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].Name < wallets[j].Name })
	return wallets, nil
}

func listHotkeys(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var hotkeys []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), "pub.txt") {
			continue
		}
		hotkeys = append(hotkeys, entry.Name())
	}
	sort.Strings(hotkeys)
	return hotkeys
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ColdkeyAddress returns the SS58 address of a coldkey without touching the
// secret keyfile.
func ColdkeyAddress(basePath, name string) (string, error) {
	data, err := readKeyfile(filepath.Join(basePath, name, coldkeyPubFileName))
	if err != nil {
		return "", err
	}
	if data.SS58Address == "" {
		return "", fmt.Errorf("coldkeypub for %q has no ss58 address", name)
	}
	return data.SS58Address, nil
}

// HotkeyAddress returns the SS58 address of a named hotkey.
func HotkeyAddress(basePath, name, hotkey string) (string, error) {
	data, err := readKeyfile(filepath.Join(basePath, name, hotkeysDirName, hotkey))
	if err != nil {
		return "", err
	}
	if data.SS58Address == "" {
		return "", fmt.Errorf("hotkey %s/%s has no ss58 address", name, hotkey)
	}
	return data.SS58Address, nil
}

// CreateColdkey creates a new coldkey wallet directory with a fresh mnemonic.
// It refuses to overwrite an existing wallet. The mnemonic is returned so the
// caller can show it exactly once.
func CreateColdkey(basePath, name string, words int) (address, mnemonic string, err error) {
	dir := filepath.Join(basePath, name)
	if _, err := os.Stat(dir); err == nil {
		return "", "", fmt.Errorf("wallet %q already exists", name)
	}

	mnemonic, kpData, err := generateKey(words)
	if err != nil {
		return "", "", err
	}
	if err := writeKeyfile(filepath.Join(dir, coldkeyFileName), kpData, 0600); err != nil {
		return "", "", err
	}
	if err := writeKeyfile(filepath.Join(dir, coldkeyPubFileName), kpData.public(), 0644); err != nil {
		return "", "", err
	}
	return kpData.SS58Address, mnemonic, nil
}

// CreateHotkeys adds count numbered hotkeys to an existing wallet, continuing
// after the highest existing number. Returns the first and last number
// created.
func CreateHotkeys(basePath, name string, count, words int) (start, end int, err error) {
	if count <= 0 {
		return 0, 0, fmt.Errorf("hotkey count must be positive")
	}
	dir := filepath.Join(basePath, name, hotkeysDirName)

	start = 1
	for _, hk := range listHotkeys(dir) {
		if n, err := strconv.Atoi(hk); err == nil && n >= start {
			start = n + 1
		}
	}

	for i := start; i < start+count; i++ {
		_, kpData, err := generateKey(words)
		if err != nil {
			return 0, 0, err
		}
		if err := writeKeyfile(filepath.Join(dir, strconv.Itoa(i)), kpData, 0600); err != nil {
			return 0, 0, err
		}
	}
	return start, start + count - 1, nil
}

// LoadColdkey loads a coldkey as a signing keypair. This reads the secret
// keyfile and is the unlock step before submitting extrinsics.
func LoadColdkey(basePath, name string) (signature.KeyringPair, error) {
	return loadKeypair(filepath.Join(basePath, name, coldkeyFileName))
}

// LoadHotkey loads a named hotkey as a signing keypair.
func LoadHotkey(basePath, name, hotkey string) (signature.KeyringPair, error) {
	return loadKeypair(filepath.Join(basePath, name, hotkeysDirName, hotkey))
}

func loadKeypair(path string) (signature.KeyringPair, error) {
	data, err := readKeyfile(path)
	if err != nil {
		return signature.KeyringPair{}, err
	}
	if data.SecretPhrase == "" {
		return signature.KeyringPair{}, fmt.Errorf("keyfile %s holds no secret phrase", filepath.Base(path))
	}
	kp, err := signature.KeyringPairFromSecret(data.SecretPhrase, SS58Format)
	if err != nil {
		return signature.KeyringPair{}, fmt.Errorf("could not derive keypair: %w", err)
	}
	return kp, nil
}

func generateKey(words int) (string, keyfileData, error) {
	bits := words / 3 * 32
	if bits < 128 || bits > 256 {
		bits = 128
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", keyfileData{}, fmt.Errorf("could not generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", keyfileData{}, fmt.Errorf("could not generate mnemonic: %w", err)
	}
	kp, err := sr25519.Scheme{}.FromPhrase(mnemonic, "")
	if err != nil {
		return "", keyfileData{}, fmt.Errorf("could not derive sr25519 key: %w", err)
	}
	data, err := newKeyfileData(kp, mnemonic)
	if err != nil {
		return "", keyfileData{}, err
	}
	return mnemonic, data, nil
}
