package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"tao-cli/wallet"
)

// InvalidSelectionError reports the first selection token that matched
// neither a wallet name, a valid index, nor a name prefix.
type InvalidSelectionError struct {
	Token string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q", e.Token)
}

// ResolveSelection resolves a raw selection string against the displayed
// wallet list. Accepted forms: "all", an exact wallet name, a 1-based index,
// a name prefix expanding to every match, or a comma-separated mix of the
// above. The result is deduplicated by name in order of first reference. Any
// token that resolves to nothing fails the whole selection.
func ResolveSelection(input string, wallets []wallet.Wallet) ([]wallet.Wallet, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "all") {
		out := make([]wallet.Wallet, len(wallets))
		copy(out, wallets)
		return out, nil
	}

	byName := make(map[string]wallet.Wallet, len(wallets))
	for _, w := range wallets {
		byName[w.Name] = w
	}

	var tokens []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	if len(tokens) == 0 {
		return nil, &InvalidSelectionError{Token: input}
	}

	seen := make(map[string]bool)
	var selected []wallet.Wallet
	add := func(w wallet.Wallet) {
		if !seen[w.Name] {
			seen[w.Name] = true
			selected = append(selected, w)
		}
	}

	for _, token := range tokens {
		if w, ok := byName[token]; ok {
			add(w)
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			if idx < 1 || idx > len(wallets) {
				return nil, &InvalidSelectionError{Token: token}
			}
			add(wallets[idx-1])
			continue
		}
		matched := false
		for _, w := range wallets {
			if strings.HasPrefix(w.Name, token) {
				add(w)
				matched = true
			}
		}
		if !matched {
			return nil, &InvalidSelectionError{Token: token}
		}
	}
	return selected, nil
}
