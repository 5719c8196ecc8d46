package substrate

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// RegistrationAllowed reports whether a subnet currently accepts
// registrations.
func (c *Client) RegistrationAllowed(netuid uint16) (bool, error) {
	var allowed types.Bool
	ok, err := c.querySubnetValue("NetworkRegistrationAllowed", netuid, &allowed)
	if err != nil {
		return false, err
	}
	// Missing storage means the default, which is open.
	return !ok || bool(allowed), nil
}

// NeuronCount returns the current number of neurons on a subnet.
func (c *Client) NeuronCount(netuid uint16) (uint16, error) {
	var n types.U16
	if _, err := c.querySubnetValue("SubnetworkN", netuid, &n); err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// MaxNeurons returns the maximum number of UIDs a subnet can hold.
func (c *Client) MaxNeurons(netuid uint16) (uint16, error) {
	var n types.U16
	if _, err := c.querySubnetValue("MaxAllowedUids", netuid, &n); err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// Tempo returns a subnet's tempo in blocks.
func (c *Client) Tempo(netuid uint16) (uint16, error) {
	var tempo types.U16
	if _, err := c.querySubnetValue("Tempo", netuid, &tempo); err != nil {
		return 0, err
	}
	return uint16(tempo), nil
}

func (c *Client) querySubnetValue(storageFunc string, netuid uint16, target any) (bool, error) {
	encNetuid, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return false, fmt.Errorf("could not encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(c.meta, subtensorModule, storageFunc, encNetuid)
	if err != nil {
		return false, fmt.Errorf("could not build %s storage key: %w", storageFunc, err)
	}
	ok, err := c.api.RPC.State.GetStorageLatest(key, target)
	if err != nil {
		return false, fmt.Errorf("could not query %s for subnet %d: %w", storageFunc, netuid, err)
	}
	return ok, nil
}
