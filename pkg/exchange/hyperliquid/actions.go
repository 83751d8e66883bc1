package hyperliquid

import "strings"

// Action is any payload accepted by the exchange endpoint. The concrete
// structs below declare fields in canonical wire order; msgpack encodes
// struct fields in declaration order, which is what the signing hash
// depends on.
type Action interface {
	ActionType() string
}

// signingNormalizer is implemented by actions whose price and size strings
// must have trailing zeros stripped in the signing preimage. The JSON body
// posted to the venue keeps the formatted strings untouched.
type signingNormalizer interface {
	normalizedForSigning() any
}

// stripTrailingZeros removes redundant fractional zeros ("102.50" -> "102.5",
// "12.0" -> "12"). Integer strings pass through unchanged.
func stripTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func normalizeOrderWires(orders []OrderWire) []OrderWire {
	out := make([]OrderWire, len(orders))
	for i, o := range orders {
		o.LimitPx = stripTrailingZeros(o.LimitPx)
		o.Sz = stripTrailingZeros(o.Sz)
		out[i] = o
	}
	return out
}

// BuilderFee attributes an order flow fee to a builder address.
type BuilderFee struct {
	Builder string `json:"b" msgpack:"b"`
	Fee     int    `json:"f" msgpack:"f"`
}

// OrderAction submits one or more orders.
type OrderAction struct {
	Type     string      `json:"type" msgpack:"type"`
	Orders   []OrderWire `json:"orders" msgpack:"orders"`
	Grouping string      `json:"grouping" msgpack:"grouping"`
	Builder  *BuilderFee `json:"builder,omitempty" msgpack:"builder,omitempty"`
}

func (OrderAction) ActionType() string { return "order" }

func (a OrderAction) normalizedForSigning() any {
	a.Orders = normalizeOrderWires(a.Orders)
	return a
}

// CancelAction cancels orders by oid.
type CancelAction struct {
	Type    string       `json:"type" msgpack:"type"`
	Cancels []CancelWire `json:"cancels" msgpack:"cancels"`
}

func (CancelAction) ActionType() string { return "cancel" }

// CancelByCloidAction cancels orders by client order id.
type CancelByCloidAction struct {
	Type    string              `json:"type" msgpack:"type"`
	Cancels []CancelByCloidWire `json:"cancels" msgpack:"cancels"`
}

func (CancelByCloidAction) ActionType() string { return "cancelByCloid" }

// ModifyAction replaces a single resting order in place.
type ModifyAction struct {
	Type  string    `json:"type" msgpack:"type"`
	Oid   any       `json:"oid" msgpack:"oid"`
	Order OrderWire `json:"order" msgpack:"order"`
}

func (ModifyAction) ActionType() string { return "modify" }

func (a ModifyAction) normalizedForSigning() any {
	a.Order.LimitPx = stripTrailingZeros(a.Order.LimitPx)
	a.Order.Sz = stripTrailingZeros(a.Order.Sz)
	return a
}

// BatchModifyAction replaces multiple resting orders atomically.
type BatchModifyAction struct {
	Type     string       `json:"type" msgpack:"type"`
	Modifies []ModifyWire `json:"modifies" msgpack:"modifies"`
}

func (BatchModifyAction) ActionType() string { return "batchModify" }

func (a BatchModifyAction) normalizedForSigning() any {
	modifies := make([]ModifyWire, len(a.Modifies))
	for i, m := range a.Modifies {
		m.Order.LimitPx = stripTrailingZeros(m.Order.LimitPx)
		m.Order.Sz = stripTrailingZeros(m.Order.Sz)
		modifies[i] = m
	}
	a.Modifies = modifies
	return a
}

// UpdateLeverageAction adjusts leverage for an asset.
type UpdateLeverageAction struct {
	Type     string `json:"type" msgpack:"type"`
	Asset    int    `json:"asset" msgpack:"asset"`
	IsCross  bool   `json:"isCross" msgpack:"isCross"`
	Leverage int    `json:"leverage" msgpack:"leverage"`
}

func (UpdateLeverageAction) ActionType() string { return "updateLeverage" }

// UpdateIsolatedMarginAction adds or removes isolated margin on a position.
type UpdateIsolatedMarginAction struct {
	Type  string `json:"type" msgpack:"type"`
	Asset int    `json:"asset" msgpack:"asset"`
	IsBuy bool   `json:"isBuy" msgpack:"isBuy"`
	Ntli  int64  `json:"ntli" msgpack:"ntli"`
}

func (UpdateIsolatedMarginAction) ActionType() string { return "updateIsolatedMargin" }

// UsdClassTransferAction moves USDC between perp and spot balances.
type UsdClassTransferAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Amount           string `json:"amount" msgpack:"amount"`
	ToPerp           bool   `json:"toPerp" msgpack:"toPerp"`
	Nonce            int64  `json:"nonce" msgpack:"nonce"`
}

func (UsdClassTransferAction) ActionType() string { return "usdClassTransfer" }

// SpotSendAction transfers a spot token to another address.
type SpotSendAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Destination      string `json:"destination" msgpack:"destination"`
	Token            string `json:"token" msgpack:"token"`
	Amount           string `json:"amount" msgpack:"amount"`
	Time             int64  `json:"time" msgpack:"time"`
}

func (SpotSendAction) ActionType() string { return "spotSend" }

// CDepositAction moves USDC into the staking balance.
type CDepositAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Wei              int64  `json:"wei" msgpack:"wei"`
	Nonce            int64  `json:"nonce" msgpack:"nonce"`
}

func (CDepositAction) ActionType() string { return "cDeposit" }

// CWithdrawAction moves USDC out of the staking balance.
type CWithdrawAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	Wei              int64  `json:"wei" msgpack:"wei"`
	Nonce            int64  `json:"nonce" msgpack:"nonce"`
}

func (CWithdrawAction) ActionType() string { return "cWithdraw" }

// VaultTransferAction deposits to or withdraws from a vault.
type VaultTransferAction struct {
	Type         string `json:"type" msgpack:"type"`
	VaultAddress string `json:"vaultAddress" msgpack:"vaultAddress"`
	IsDeposit    bool   `json:"isDeposit" msgpack:"isDeposit"`
	USD          int64  `json:"usd" msgpack:"usd"`
}

func (VaultTransferAction) ActionType() string { return "vaultTransfer" }

// ApproveAgentAction authorizes an agent wallet to sign on the account's behalf.
type ApproveAgentAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	AgentAddress     string `json:"agentAddress" msgpack:"agentAddress"`
	AgentName        string `json:"agentName,omitempty" msgpack:"agentName,omitempty"`
	Nonce            int64  `json:"nonce" msgpack:"nonce"`
}

func (ApproveAgentAction) ActionType() string { return "approveAgent" }

// ApproveBuilderFeeAction authorizes a builder to collect fees up to a cap.
type ApproveBuilderFeeAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	MaxFeeRate       string `json:"maxFeeRate" msgpack:"maxFeeRate"`
	Builder          string `json:"builder" msgpack:"builder"`
	Nonce            int64  `json:"nonce" msgpack:"nonce"`
}

func (ApproveBuilderFeeAction) ActionType() string { return "approveBuilderFee" }

// TwapWire describes a time-weighted order slice schedule.
type TwapWire struct {
	Asset      int    `json:"a" msgpack:"a"`
	IsBuy      bool   `json:"b" msgpack:"b"`
	Sz         string `json:"s" msgpack:"s"`
	ReduceOnly bool   `json:"r" msgpack:"r"`
	Minutes    int    `json:"m" msgpack:"m"`
	Randomize  bool   `json:"t" msgpack:"t"`
}

// TwapOrderAction starts a TWAP execution.
type TwapOrderAction struct {
	Type string   `json:"type" msgpack:"type"`
	Twap TwapWire `json:"twap" msgpack:"twap"`
}

func (TwapOrderAction) ActionType() string { return "twapOrder" }

func (a TwapOrderAction) normalizedForSigning() any {
	a.Twap.Sz = stripTrailingZeros(a.Twap.Sz)
	return a
}

// TwapCancelAction stops a running TWAP execution.
type TwapCancelAction struct {
	Type   string `json:"type" msgpack:"type"`
	Asset  int    `json:"a" msgpack:"a"`
	TwapID int64  `json:"t" msgpack:"t"`
}

func (TwapCancelAction) ActionType() string { return "twapCancel" }

// ReserveRequestWeightAction buys additional rate-limit weight.
type ReserveRequestWeightAction struct {
	Type   string `json:"type" msgpack:"type"`
	Weight int    `json:"weight" msgpack:"weight"`
}

func (ReserveRequestWeightAction) ActionType() string { return "reserveRequestWeight" }
