package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vedhavyas/go-subkey/v2"
)

// keyfileData mirrors the JSON keyfile layout the wallet SDK writes to disk.
// Public files (coldkeypub.txt) omit the secret phrase.
type keyfileData struct {
	AccountID    string `json:"accountId"`
	PublicKey    string `json:"publicKey"`
	SecretPhrase string `json:"secretPhrase,omitempty"`
	SS58Address  string `json:"ss58Address"`
}

func newKeyfileData(kp subkey.KeyPair, mnemonic string) (keyfileData, error) {
	addr := kp.SS58Address(SS58Format)
	pub := "0x" + hex.EncodeToString(kp.Public())
	return keyfileData{
		AccountID:    pub,
		PublicKey:    pub,
		SecretPhrase: mnemonic,
		SS58Address:  addr,
	}, nil
}

// public strips the secret phrase for pub-file serialization.
func (d keyfileData) public() keyfileData {
	d.SecretPhrase = ""
	return d
}

func writeKeyfile(path string, data keyfileData, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create key directory: %w", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("could not marshal keyfile: %w", err)
	}
	if err := os.WriteFile(path, raw, perm); err != nil {
		return fmt.Errorf("could not write keyfile: %w", err)
	}
	return nil
}

func readKeyfile(path string) (keyfileData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return keyfileData{}, fmt.Errorf("could not read keyfile: %w", err)
	}
	var data keyfileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return keyfileData{}, fmt.Errorf("could not parse keyfile %s: %w", filepath.Base(path), err)
	}
	return data, nil
}
