// Package substrate wraps the Go substrate SDK for the chain operations the
// manager needs: balance and subnet queries plus the extrinsics for
// transfers, staking, and burn registration.
package substrate

import (
	"fmt"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/rs/zerolog"
	"github.com/vedhavyas/go-subkey/v2"
)

const subtensorModule = "SubtensorModule"

// Client is a connected chain client. Not safe for concurrent use; the menu
// shell is single-threaded.
type Client struct {
	api  *gsrpc.SubstrateAPI
	meta *types.Metadata
	url  string
	log  zerolog.Logger
}

// Dial connects to the first reachable endpoint, trying fallbacks in order.
func Dial(endpoint string, fallbacks []string, log zerolog.Logger) (*Client, error) {
	endpoints := append([]string{endpoint}, fallbacks...)

	var lastErr error
	for _, url := range endpoints {
		api, err := gsrpc.NewSubstrateAPI(url)
		if err != nil {
			log.Warn().Str("endpoint", url).Err(err).Msg("endpoint unreachable")
			lastErr = err
			continue
		}
		meta, err := api.RPC.State.GetMetadataLatest()
		if err != nil {
			log.Warn().Str("endpoint", url).Err(err).Msg("could not fetch metadata")
			lastErr = err
			continue
		}
		log.Info().Str("endpoint", url).Msg("connected")
		return &Client{api: api, meta: meta, url: url, log: log}, nil
	}
	return nil, fmt.Errorf("no reachable endpoint: %w", lastErr)
}

// URL returns the endpoint this client is connected to.
func (c *Client) URL() string {
	return c.url
}

// Chain returns the chain name reported by the node.
func (c *Client) Chain() (string, error) {
	chain, err := c.api.RPC.System.Chain()
	if err != nil {
		return "", fmt.Errorf("could not query chain name: %w", err)
	}
	return string(chain), nil
}

// CurrentBlock returns the latest block number.
func (c *Client) CurrentBlock() (uint64, error) {
	header, err := c.api.RPC.Chain.GetHeaderLatest()
	if err != nil {
		return 0, fmt.Errorf("could not get chain head: %w", err)
	}
	return uint64(header.Number), nil
}

// FreeBalance returns the free balance in RAO for an SS58 address.
func (c *Client) FreeBalance(ss58 string) (uint64, error) {
	account, err := accountID(ss58)
	if err != nil {
		return 0, err
	}
	key, err := types.CreateStorageKey(c.meta, "System", "Account", account)
	if err != nil {
		return 0, fmt.Errorf("could not build account storage key: %w", err)
	}
	var info types.AccountInfo
	ok, err := c.api.RPC.State.GetStorageLatest(key, &info)
	if err != nil {
		return 0, fmt.Errorf("could not query balance for %s: %w", ss58, err)
	}
	if !ok {
		return 0, nil
	}
	return info.Data.Free.Uint64(), nil
}

// ExistentialDeposit returns the minimum balance in RAO an account must keep.
func (c *Client) ExistentialDeposit() (uint64, error) {
	raw, err := c.meta.FindConstantValue("Balances", "ExistentialDeposit")
	if err != nil {
		return 0, fmt.Errorf("could not find existential deposit: %w", err)
	}
	var deposit types.U128
	if err := codec.Decode(raw, &deposit); err != nil {
		return 0, fmt.Errorf("could not decode existential deposit: %w", err)
	}
	return deposit.Uint64(), nil
}

// BurnCost returns the current burn registration cost in RAO for a subnet.
func (c *Client) BurnCost(netuid uint16) (uint64, error) {
	encNetuid, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return 0, fmt.Errorf("could not encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(c.meta, subtensorModule, "Burn", encNetuid)
	if err != nil {
		return 0, fmt.Errorf("could not build burn storage key: %w", err)
	}
	var burn types.U64
	ok, err := c.api.RPC.State.GetStorageLatest(key, &burn)
	if err != nil {
		return 0, fmt.Errorf("could not query burn cost for subnet %d: %w", netuid, err)
	}
	if !ok {
		return 0, fmt.Errorf("subnet %d does not exist", netuid)
	}
	return uint64(burn), nil
}

// SubnetExists reports whether a netuid is registered on the chain.
func (c *Client) SubnetExists(netuid uint16) (bool, error) {
	encNetuid, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return false, fmt.Errorf("could not encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(c.meta, subtensorModule, "NetworksAdded", encNetuid)
	if err != nil {
		return false, fmt.Errorf("could not build storage key: %w", err)
	}
	var added types.Bool
	ok, err := c.api.RPC.State.GetStorageLatest(key, &added)
	if err != nil {
		return false, fmt.Errorf("could not query subnet %d: %w", netuid, err)
	}
	return ok && bool(added), nil
}

// UID looks up the UID of a hotkey on a subnet. The second return reports
// whether the hotkey is registered at all.
func (c *Client) UID(netuid uint16, hotkeySS58 string) (uint16, bool, error) {
	account, err := accountID(hotkeySS58)
	if err != nil {
		return 0, false, err
	}
	encNetuid, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return 0, false, fmt.Errorf("could not encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(c.meta, subtensorModule, "Uids", encNetuid, account)
	if err != nil {
		return 0, false, fmt.Errorf("could not build uid storage key: %w", err)
	}
	var uid types.U16
	ok, err := c.api.RPC.State.GetStorageLatest(key, &uid)
	if err != nil {
		return 0, false, fmt.Errorf("could not query uid: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	return uint16(uid), true, nil
}

// accountID decodes an SS58 address to its raw 32-byte account id.
func accountID(ss58 string) ([]byte, error) {
	_, pub, err := subkey.SS58Decode(ss58)
	if err != nil {
		return nil, fmt.Errorf("invalid ss58 address %q: %w", ss58, err)
	}
	if len(pub) != 32 {
		return nil, fmt.Errorf("unexpected account id length %d for %q", len(pub), ss58)
	}
	return pub, nil
}
