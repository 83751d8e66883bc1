package hyperliquid

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// UpdateLeverage adjusts leverage for an asset.
func (c *Client) UpdateLeverage(ctx context.Context, assetName string, isCross bool, leverage int) error {
	if leverage < 1 {
		return fmt.Errorf("hyperliquid: leverage must be at least 1, got %d", leverage)
	}
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	action := UpdateLeverageAction{
		Type:     "updateLeverage",
		Asset:    info.ID,
		IsCross:  isCross,
		Leverage: leverage,
	}
	_, err = c.doExchangeRequest(ctx, action)
	return err
}

// UpdateIsolatedMargin adds (positive ntli) or removes (negative) isolated
// margin on an open position. Ntli is expressed in USDC micro-units.
func (c *Client) UpdateIsolatedMargin(ctx context.Context, assetName string, isBuy bool, ntli int64) error {
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	action := UpdateIsolatedMarginAction{
		Type:  "updateIsolatedMargin",
		Asset: info.ID,
		IsBuy: isBuy,
		Ntli:  ntli,
	}
	_, err = c.doExchangeRequest(ctx, action)
	return err
}

// signatureChainID is the EVM chain id embedded in user-signed actions,
// Arbitrum One on both environments.
const signatureChainID = "0xa4b1"

// hyperliquidChain names the environment inside user-signed action payloads.
func (c *Client) hyperliquidChain() string {
	if c.isTestnet {
		return "Testnet"
	}
	return "Mainnet"
}

// TransferUsdClass moves USDC between the perp and spot balances.
func (c *Client) TransferUsdClass(ctx context.Context, amount string, toPerp bool) error {
	if !IsPositiveDecimal(amount) {
		return fmt.Errorf("hyperliquid: transfer amount must be positive, got %q", amount)
	}
	action := UsdClassTransferAction{
		Type:             "usdClassTransfer",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		Amount:           amount,
		ToPerp:           toPerp,
		Nonce:            c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// SendSpot transfers a spot token to another address.
func (c *Client) SendSpot(ctx context.Context, destination, token, amount string) error {
	if !common.IsHexAddress(destination) {
		return fmt.Errorf("hyperliquid: invalid destination address %q", destination)
	}
	if !IsPositiveDecimal(amount) {
		return fmt.Errorf("hyperliquid: send amount must be positive, got %q", amount)
	}
	action := SpotSendAction{
		Type:             "spotSend",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		Destination:      common.HexToAddress(destination).Hex(),
		Token:            token,
		Amount:           amount,
		Time:             c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// DepositStaking moves wei from the spot balance into staking.
func (c *Client) DepositStaking(ctx context.Context, wei int64) error {
	if wei <= 0 {
		return fmt.Errorf("hyperliquid: staking deposit must be positive, got %d", wei)
	}
	action := CDepositAction{
		Type:             "cDeposit",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		Wei:              wei,
		Nonce:            c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// WithdrawStaking moves wei from staking back to the spot balance.
func (c *Client) WithdrawStaking(ctx context.Context, wei int64) error {
	if wei <= 0 {
		return fmt.Errorf("hyperliquid: staking withdrawal must be positive, got %d", wei)
	}
	action := CWithdrawAction{
		Type:             "cWithdraw",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		Wei:              wei,
		Nonce:            c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// VaultTransfer deposits to or withdraws from a vault. USD is expressed in
// USDC micro-units.
func (c *Client) VaultTransfer(ctx context.Context, vaultAddress string, isDeposit bool, usd int64) error {
	if !common.IsHexAddress(vaultAddress) {
		return fmt.Errorf("hyperliquid: invalid vault address %q", vaultAddress)
	}
	action := VaultTransferAction{
		Type:         "vaultTransfer",
		VaultAddress: common.HexToAddress(vaultAddress).Hex(),
		IsDeposit:    isDeposit,
		USD:          usd,
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// ApproveAgent authorizes an agent wallet to sign on the account's behalf.
func (c *Client) ApproveAgent(ctx context.Context, agentAddress, agentName string) error {
	if !common.IsHexAddress(agentAddress) {
		return fmt.Errorf("hyperliquid: invalid agent address %q", agentAddress)
	}
	action := ApproveAgentAction{
		Type:             "approveAgent",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		AgentAddress:     common.HexToAddress(agentAddress).Hex(),
		AgentName:        agentName,
		Nonce:            c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// ApproveBuilderFee authorizes a builder address to collect fees up to
// maxFeeRate (e.g. "0.001%").
func (c *Client) ApproveBuilderFee(ctx context.Context, builder, maxFeeRate string) error {
	if !common.IsHexAddress(builder) {
		return fmt.Errorf("hyperliquid: invalid builder address %q", builder)
	}
	action := ApproveBuilderFeeAction{
		Type:             "approveBuilderFee",
		HyperliquidChain: c.hyperliquidChain(),
		SignatureChainID: signatureChainID,
		MaxFeeRate:       maxFeeRate,
		Builder:          common.HexToAddress(builder).Hex(),
		Nonce:            c.nonces.Next(),
	}
	_, err := c.doExchangeRequest(ctx, action)
	return err
}

// PlaceTwapOrder starts a TWAP execution slicing sz over the given minutes.
func (c *Client) PlaceTwapOrder(ctx context.Context, assetName string, isBuy bool, sz string, reduceOnly bool, minutes int, randomize bool) error {
	if minutes < 5 {
		return fmt.Errorf("hyperliquid: twap duration must be at least 5 minutes, got %d", minutes)
	}
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	size, err := FormatSize(sz, info.SzDecimals)
	if err != nil {
		return err
	}
	action := TwapOrderAction{
		Type: "twapOrder",
		Twap: TwapWire{
			Asset:      info.ID,
			IsBuy:      isBuy,
			Sz:         size,
			ReduceOnly: reduceOnly,
			Minutes:    minutes,
			Randomize:  randomize,
		},
	}
	_, err = c.doExchangeRequest(ctx, action)
	return err
}

// CancelTwapOrder stops a running TWAP execution.
func (c *Client) CancelTwapOrder(ctx context.Context, assetName string, twapID int64) error {
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	action := TwapCancelAction{Type: "twapCancel", Asset: info.ID, TwapID: twapID}
	_, err = c.doExchangeRequest(ctx, action)
	return err
}

// ReserveRequestWeight buys additional rate-limit weight for the account.
func (c *Client) ReserveRequestWeight(ctx context.Context, weight int) error {
	if weight <= 0 {
		return fmt.Errorf("hyperliquid: weight must be positive, got %d", weight)
	}
	_, err := c.doExchangeRequest(ctx, ReserveRequestWeightAction{Type: "reserveRequestWeight", Weight: weight})
	return err
}
