package exchange

// Core trading domain types shared between the gateway surface and the venue
// implementations. Prices and sizes travel as plain decimal strings end to end
// so no binary floating point ever touches order math.

// OrderType captures the execution parameters of an order. Exactly one of
// Limit or Trigger is populated; construct values through LimitType or
// TriggerType so the invariant holds at build time.
type OrderType struct {
	Limit   *LimitOrderType   `json:"limit,omitempty"`
	Trigger *TriggerOrderType `json:"trigger,omitempty"`
}

// LimitOrderType defines limit order specific fields.
type LimitOrderType struct {
	TIF string `json:"tif"` // Valid values: "Alo", "Ioc", "Gtc"
}

// TriggerOrderType defines trigger (TP/SL) order specific fields.
type TriggerOrderType struct {
	IsMarket  bool   `json:"isMarket"`
	TriggerPx string `json:"triggerPx"`
	Tpsl      string `json:"tpsl"` // "tp" or "sl"
}

// LimitType builds a limit OrderType with the given time-in-force.
func LimitType(tif string) OrderType {
	return OrderType{Limit: &LimitOrderType{TIF: tif}}
}

// TriggerType builds a trigger OrderType.
func TriggerType(isMarket bool, triggerPx, tpsl string) OrderType {
	return OrderType{Trigger: &TriggerOrderType{IsMarket: isMarket, TriggerPx: triggerPx, Tpsl: tpsl}}
}

// Order describes a normalized order request keyed by asset name. The venue
// implementation resolves asset ids and applies the venue's formatting rules.
type Order struct {
	AssetName  string    `json:"assetName"`
	IsBuy      bool      `json:"isBuy"`
	LimitPx    string    `json:"limitPx"`
	Sz         string    `json:"sz"`
	ReduceOnly bool      `json:"reduceOnly"`
	OrderType  OrderType `json:"orderType"`
	Cloid      string    `json:"cloid,omitempty"` // optional 128-bit hex client order id
}

// SizeSpec selects how an instant order is sized. Exactly one field is set:
// Base is an explicit base quantity, Quote a collateral amount converted at
// the submission price, Percent a fraction (0,1] of current account equity.
type SizeSpec struct {
	Base    string `json:"base,omitempty"`
	Quote   string `json:"quote,omitempty"`
	Percent string `json:"percent,omitempty"`
}

// InstantOrderParams configures a market-equivalent order placed as a
// marketable post-only limit one tick through the mark price.
type InstantOrderParams struct {
	AssetName  string
	IsBuy      bool
	Size       SizeSpec
	ReduceOnly bool

	// Zero values fall back to the engine defaults.
	MaxRetries     int
	RetryDelayMs   int64
	PollIntervalMs int64
	TimeoutMs      int64
}

// InstantOrderResult reports the terminal outcome of an instant order.
type InstantOrderResult struct {
	Oid               int64            `json:"oid"`
	Status            string           `json:"status"`
	Order             *OrderStatusData `json:"order,omitempty"`
	TimedOut          bool             `json:"timedOut"`
	CanceledByTimeout bool             `json:"canceledByTimeout"`
}

// ProtectiveSpec is one desired take-profit or stop-loss level.
type ProtectiveSpec struct {
	Price    string `json:"price"`
	Sz       string `json:"sz"`
	IsMarket *bool  `json:"isMarket,omitempty"` // nil means market trigger
}

// BatchProtectiveParams is the desired protective-order state for one
// asset/side. Existing resting TP/SL orders are reconciled toward it.
type BatchProtectiveParams struct {
	AssetName string           `json:"assetName"`
	IsBuy     bool             `json:"isBuy"`
	TP        []ProtectiveSpec `json:"tp,omitempty"`
	SL        []ProtectiveSpec `json:"sl,omitempty"`
}

// ProtectiveKindResult lists the order ids touched for one kind. Partial
// success is a valid outcome: a failed item is logged and omitted here.
type ProtectiveKindResult struct {
	Created   []int64 `json:"created"`
	Updated   []int64 `json:"updated"`
	Cancelled []int64 `json:"cancelled"`
}

// ProtectiveResult is the per-kind outcome of a reconciliation pass.
type ProtectiveResult struct {
	TP ProtectiveKindResult `json:"tp"`
	SL ProtectiveKindResult `json:"sl"`
}

// Position captures live position details.
type Position struct {
	Coin           string   `json:"coin"`
	EntryPx        string   `json:"entryPx"`
	PositionValue  string   `json:"positionValue"`
	Szi            string   `json:"szi"` // signed position size
	UnrealizedPnl  string   `json:"unrealizedPnl"`
	ReturnOnEquity string   `json:"returnOnEquity"`
	Leverage       Leverage `json:"leverage"`
	LiquidationPx  string   `json:"liquidationPx,omitempty"`
}

// Leverage contains leverage settings for an instrument.
type Leverage struct {
	Type  string `json:"type"` // "cross" or "isolated"
	Value int    `json:"value"`
}

// AssetPosition wraps a position with its mode as returned by the venue.
type AssetPosition struct {
	Type     string   `json:"type"`
	Position Position `json:"position"`
}

// MarginSummary consolidates margin metrics. Values stay decimal strings.
type MarginSummary struct {
	AccountValue    string `json:"accountValue"`
	TotalMarginUsed string `json:"totalMarginUsed"`
	TotalNtlPos     string `json:"totalNtlPos"`
	TotalRawUSD     string `json:"totalRawUsd"`
}

// AccountState summarizes a perp trading account.
type AccountState struct {
	MarginSummary      MarginSummary   `json:"marginSummary"`
	CrossMarginSummary MarginSummary   `json:"crossMarginSummary"`
	AssetPositions     []AssetPosition `json:"assetPositions"`
	Withdrawable       string          `json:"withdrawable"`
}

// SpotBalance is one spot token balance.
type SpotBalance struct {
	Coin     string `json:"coin"`
	Token    int    `json:"token"`
	Total    string `json:"total"`
	Hold     string `json:"hold"`
	EntryNtl string `json:"entryNtl"`
}

// SpotState holds the account's spot balances.
type SpotState struct {
	Balances []SpotBalance `json:"balances"`
}

// OrderInfo stores metadata about an individual resting or historical order.
type OrderInfo struct {
	Coin      string `json:"coin"`
	Side      string `json:"side"`
	LimitPx   string `json:"limitPx"`
	Sz        string `json:"sz"`
	Oid       int64  `json:"oid"`
	Timestamp int64  `json:"timestamp"`
	OrigSz    string `json:"origSz"`
	Cloid     string `json:"cloid,omitempty"`
}

// OrderStatusData conveys order lifecycle information as reported by the
// venue. Status is "open" until a terminal state is reached.
type OrderStatusData struct {
	Order           OrderInfo `json:"order"`
	Status          string    `json:"status"`
	StatusTimestamp int64     `json:"statusTimestamp"`
}

// OrderStatusQuery is the result of an orderStatus lookup. Status is "order"
// when the oid resolved, "unknownOid" otherwise.
type OrderStatusQuery struct {
	Status string           `json:"status"`
	Order  *OrderStatusData `json:"order,omitempty"`
}

// FrontendOpenOrder is an open order enriched with trigger metadata, as
// returned by the frontendOpenOrders query.
type FrontendOpenOrder struct {
	Coin             string `json:"coin"`
	Side             string `json:"side"`
	LimitPx          string `json:"limitPx"`
	Sz               string `json:"sz"`
	OrigSz           string `json:"origSz"`
	Oid              int64  `json:"oid"`
	Timestamp        int64  `json:"timestamp"`
	Cloid            string `json:"cloid,omitempty"`
	ReduceOnly       bool   `json:"reduceOnly"`
	IsTrigger        bool   `json:"isTrigger"`
	IsPositionTpsl   bool   `json:"isPositionTpsl"`
	OrderType        string `json:"orderType"`
	TriggerPx        string `json:"triggerPx"`
	TriggerCondition string `json:"triggerCondition"`
}

// Fill describes a match executed against an order.
type Fill struct {
	Coin      string `json:"coin"`
	Px        string `json:"px"`
	Sz        string `json:"sz"`
	Side      string `json:"side"`
	Time      int64  `json:"time"`
	StartPos  string `json:"startPosition"`
	Dir       string `json:"dir"`
	ClosedPnl string `json:"closedPnl"`
	Hash      string `json:"hash"`
	Oid       int64  `json:"oid"`
	Crossed   bool   `json:"crossed"`
	Fee       string `json:"fee"`
	Tid       int64  `json:"tid"`
}

// OrderResponse captures the venue response after an order submission.
type OrderResponse struct {
	Status       string            `json:"status"`
	Response     OrderResponseData `json:"response"`
	ErrorMessage string            `json:"error,omitempty"`
}

// OrderResponseData wraps the per-order statuses.
type OrderResponseData struct {
	Type string                  `json:"type"`
	Data OrderResponseDataDetail `json:"data"`
}

// OrderResponseDataDetail contains the per-order statuses.
type OrderResponseDataDetail struct {
	Statuses []OrderStatusResponse `json:"statuses"`
}

// OrderStatusResponse tracks the status of an individual order request.
// Exactly one of Resting, Filled or Error is populated.
type OrderStatusResponse struct {
	Resting *RestingOrder `json:"resting,omitempty"`
	Filled  *FilledOrder  `json:"filled,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Oid returns the order id carried by a resting or filled status, or zero.
func (s OrderStatusResponse) Oid() int64 {
	if s.Resting != nil {
		return s.Resting.Oid
	}
	if s.Filled != nil {
		return s.Filled.Oid
	}
	return 0
}

// RestingOrder represents an order currently resting on the book.
type RestingOrder struct {
	Oid int64 `json:"oid"`
}

// FilledOrder represents a fully matched order.
type FilledOrder struct {
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
	Oid     int64  `json:"oid"`
}
