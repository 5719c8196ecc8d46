package substrate

import (
	"fmt"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// inclusionTimeout bounds how long a submission waits for block inclusion.
const inclusionTimeout = 2 * time.Minute

// TransferKeepAlive sends TAO from the coldkey to dest, refusing to drop the
// sender below the existential deposit.
func (c *Client) TransferKeepAlive(coldkey signature.KeyringPair, destSS58 string, amountRao uint64) error {
	dest, err := multiAddress(destSS58)
	if err != nil {
		return err
	}
	call, err := types.NewCall(c.meta, "Balances.transfer_keep_alive", dest, types.NewUCompactFromUInt(amountRao))
	if err != nil {
		return fmt.Errorf("could not compose transfer: %w", err)
	}
	c.log.Info().Str("dest", shortAddr(destSS58)).Float64("tao", RaoToTao(amountRao)).Msg("submitting transfer_keep_alive")
	return c.submitChecked(call, coldkey)
}

// TransferAllowDeath sends TAO without the keep-alive check. The sender
// account may be reaped if it ends below the existential deposit.
func (c *Client) TransferAllowDeath(coldkey signature.KeyringPair, destSS58 string, amountRao uint64) error {
	dest, err := multiAddress(destSS58)
	if err != nil {
		return err
	}
	call, err := types.NewCall(c.meta, "Balances.transfer_allow_death", dest, types.NewUCompactFromUInt(amountRao))
	if err != nil {
		return fmt.Errorf("could not compose transfer: %w", err)
	}
	c.log.Info().Str("dest", shortAddr(destSS58)).Float64("tao", RaoToTao(amountRao)).Msg("submitting transfer_allow_death")
	return c.submitChecked(call, coldkey)
}

// AddStake stakes TAO to a hotkey on a subnet. The chain converts the TAO
// amount into subnet alpha. Signed by the coldkey.
func (c *Client) AddStake(coldkey signature.KeyringPair, hotkeySS58 string, netuid uint16, amountRao uint64) error {
	hotkey, err := newAccountID(hotkeySS58)
	if err != nil {
		return err
	}
	call, err := types.NewCall(c.meta, subtensorModule+".add_stake", hotkey, types.NewU16(netuid), types.NewU64(amountRao))
	if err != nil {
		return fmt.Errorf("could not compose add_stake: %w", err)
	}
	c.log.Info().Str("hotkey", shortAddr(hotkeySS58)).Uint16("netuid", netuid).Float64("tao", RaoToTao(amountRao)).Msg("submitting add_stake")
	return c.submitChecked(call, coldkey)
}

// RemoveStake unstakes an alpha amount (in RAO-scale units) from a hotkey on
// a subnet. The chain converts alpha back into TAO.
func (c *Client) RemoveStake(coldkey signature.KeyringPair, hotkeySS58 string, netuid uint16, alphaRao uint64) error {
	hotkey, err := newAccountID(hotkeySS58)
	if err != nil {
		return err
	}
	call, err := types.NewCall(c.meta, subtensorModule+".remove_stake", hotkey, types.NewU16(netuid), types.NewU64(alphaRao))
	if err != nil {
		return fmt.Errorf("could not compose remove_stake: %w", err)
	}
	c.log.Info().Str("hotkey", shortAddr(hotkeySS58)).Uint16("netuid", netuid).Float64("alpha", RaoToTao(alphaRao)).Msg("submitting remove_stake")
	return c.submitChecked(call, coldkey)
}

// UnstakeAll removes every stake the coldkey holds through one hotkey, across
// all subnets. One transaction per hotkey.
func (c *Client) UnstakeAll(coldkey signature.KeyringPair, hotkeySS58 string) error {
	hotkey, err := newAccountID(hotkeySS58)
	if err != nil {
		return err
	}
	call, err := types.NewCall(c.meta, subtensorModule+".unstake_all", hotkey)
	if err != nil {
		return fmt.Errorf("could not compose unstake_all: %w", err)
	}
	c.log.Info().Str("hotkey", shortAddr(hotkeySS58)).Msg("submitting unstake_all")
	return c.submitChecked(call, coldkey)
}

// UnstakeSubnet removes the full stake for one hotkey on one subnet, with no
// price limit.
func (c *Client) UnstakeSubnet(coldkey signature.KeyringPair, hotkeySS58 string, netuid uint16) error {
	hotkey, err := newAccountID(hotkeySS58)
	if err != nil {
		return err
	}
	// limit_price 0 means no slippage protection.
	call, err := types.NewCall(c.meta, subtensorModule+".remove_stake_full_limit", hotkey, types.NewU16(netuid), types.NewU64(0))
	if err != nil {
		return fmt.Errorf("could not compose remove_stake_full_limit: %w", err)
	}
	c.log.Info().Str("hotkey", shortAddr(hotkeySS58)).Uint16("netuid", netuid).Msg("submitting remove_stake_full_limit")
	return c.submitChecked(call, coldkey)
}

// BurnRegister registers a hotkey on a subnet by paying the burn cost, and
// returns the assigned UID. Signed by the coldkey, never the hotkey.
func (c *Client) BurnRegister(coldkey signature.KeyringPair, hotkeySS58 string, netuid uint16) (uint16, error) {
	hotkey, err := newAccountID(hotkeySS58)
	if err != nil {
		return 0, err
	}
	call, err := types.NewCall(c.meta, subtensorModule+".burned_register", types.NewU16(netuid), hotkey)
	if err != nil {
		return 0, fmt.Errorf("could not compose burned_register: %w", err)
	}
	c.log.Info().Str("hotkey", shortAddr(hotkeySS58)).Uint16("netuid", netuid).Msg("submitting burned_register")
	if err := c.submitChecked(call, coldkey); err != nil {
		return 0, err
	}

	uid, registered, err := c.UID(netuid, hotkeySS58)
	if err != nil {
		return 0, fmt.Errorf("registration included but uid lookup failed: %w", err)
	}
	if !registered {
		return 0, fmt.Errorf("registration included but hotkey has no uid on subnet %d", netuid)
	}
	return uid, nil
}

// submitChecked signs a call, submits it, and waits for block inclusion.
func (c *Client) submitChecked(call types.Call, kp signature.KeyringPair) error {
	ext := types.NewExtrinsic(call)

	genesisHash, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return fmt.Errorf("could not get genesis hash: %w", err)
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return fmt.Errorf("could not get runtime version: %w", err)
	}

	key, err := types.CreateStorageKey(c.meta, "System", "Account", kp.PublicKey)
	if err != nil {
		return fmt.Errorf("could not build nonce storage key: %w", err)
	}
	var info types.AccountInfo
	if _, err := c.api.RPC.State.GetStorageLatest(key, &info); err != nil {
		return fmt.Errorf("could not fetch account nonce: %w", err)
	}

	opts := types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(info.Nonce)),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	}
	if err := ext.Sign(kp, opts); err != nil {
		return fmt.Errorf("could not sign extrinsic: %w", err)
	}

	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return fmt.Errorf("could not submit extrinsic: %w", err)
	}
	defer sub.Unsubscribe()

	timeout := time.After(inclusionTimeout)
	for {
		select {
		case status := <-sub.Chan():
			switch {
			case status.IsInBlock:
				c.log.Info().Str("block", status.AsInBlock.Hex()).Msg("extrinsic in block")
				return nil
			case status.IsDropped:
				return fmt.Errorf("extrinsic dropped from the pool")
			case status.IsInvalid:
				return fmt.Errorf("extrinsic reported invalid")
			case status.IsUsurped:
				return fmt.Errorf("extrinsic usurped by a competing transaction")
			}
		case err := <-sub.Err():
			return fmt.Errorf("subscription failed: %w", err)
		case <-timeout:
			return fmt.Errorf("timed out waiting for inclusion")
		}
	}
}

func multiAddress(ss58 string) (types.MultiAddress, error) {
	account, err := accountID(ss58)
	if err != nil {
		return types.MultiAddress{}, err
	}
	addr, err := types.NewMultiAddressFromAccountID(account)
	if err != nil {
		return types.MultiAddress{}, fmt.Errorf("could not build multiaddress: %w", err)
	}
	return addr, nil
}

func newAccountID(ss58 string) (*types.AccountID, error) {
	account, err := accountID(ss58)
	if err != nil {
		return nil, err
	}
	acc, err := types.NewAccountID(account)
	if err != nil {
		return nil, fmt.Errorf("could not build account id: %w", err)
	}
	return acc, nil
}

func shortAddr(ss58 string) string {
	if len(ss58) <= 12 {
		return ss58
	}
	return ss58[:12] + "…"
}
