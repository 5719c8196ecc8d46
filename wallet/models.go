package wallet

// Wallet describes a single wallet directory under the base path.
// Hotkeys holds the hotkey file names, sorted.
type Wallet struct {
	Name          string
	ColdkeyExists bool
	Hotkeys       []string
}
