package hyperliquid

import (
	"encoding/json"
	"fmt"
)

// OrderWire is the order payload in the venue's compressed field naming.
// Field order here matches the canonical msgpack key order used for signing.
type OrderWire struct {
	Asset      int           `json:"a" msgpack:"a"`
	IsBuy      bool          `json:"b" msgpack:"b"`
	LimitPx    string        `json:"p" msgpack:"p"`
	Sz         string        `json:"s" msgpack:"s"`
	ReduceOnly bool          `json:"r" msgpack:"r"`
	OrderType  OrderTypeWire `json:"t" msgpack:"t"`
	Cloid      string        `json:"c,omitempty" msgpack:"c,omitempty"`
}

// OrderTypeWire carries exactly one of limit or trigger semantics.
type OrderTypeWire struct {
	Limit   *LimitOrderType   `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Trigger *TriggerOrderType `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

// LimitOrderType holds the time-in-force for resting orders.
type LimitOrderType struct {
	TIF string `json:"tif" msgpack:"tif"`
}

// TriggerOrderType describes a stop or take-profit trigger.
type TriggerOrderType struct {
	IsMarket  bool   `json:"isMarket" msgpack:"isMarket"`
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	Tpsl      string `json:"tpsl" msgpack:"tpsl"`
}

// CancelWire identifies an order to cancel.
type CancelWire struct {
	Asset int   `json:"a" msgpack:"a"`
	Oid   int64 `json:"o" msgpack:"o"`
}

// CancelByCloidWire identifies an order to cancel by client order id.
type CancelByCloidWire struct {
	Asset int    `json:"asset" msgpack:"asset"`
	Cloid string `json:"cloid" msgpack:"cloid"`
}

// ModifyWire pairs an order id with its replacement.
type ModifyWire struct {
	Oid   any       `json:"oid" msgpack:"oid"`
	Order OrderWire `json:"order" msgpack:"order"`
}

// Signature represents a split ECDSA signature.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

// ExchangeRequest is the signed request envelope for exchange actions.
type ExchangeRequest struct {
	Action       any       `json:"action"`
	Nonce        int64     `json:"nonce"`
	Signature    Signature `json:"signature"`
	VaultAddress string    `json:"vaultAddress,omitempty"`
	ExpiresAfter *int64    `json:"expiresAfter,omitempty"`
}

// InfoRequest targets read-only endpoints that do not require signatures.
type InfoRequest struct {
	Type      string `json:"type"`
	User      string `json:"user,omitempty"`
	Oid       any    `json:"oid,omitempty"`
	StartTime int64  `json:"startTime,omitempty"`
	EndTime   int64  `json:"endTime,omitempty"`

	AggregateByTime bool `json:"aggregateByTime,omitempty"`
}

// exchangeAPIResponse is the top-level envelope returned by /exchange.
type exchangeAPIResponse struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// exchangeResponseBody carries the typed payload inside a successful response.
type exchangeResponseBody struct {
	Type string `json:"type"`
	Data struct {
		Statuses []json.RawMessage `json:"statuses"`
	} `json:"data"`
}

// CancelStatus is either the literal string "success" or an error object.
type CancelStatus struct {
	Success bool
	Error   string
}

func (s *CancelStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Success = str == "success"
		if !s.Success {
			s.Error = str
		}
		return nil
	}
	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("hyperliquid: cancel status decode: %w", err)
	}
	s.Error = obj.Error
	return nil
}

// MetaResponse contains perpetual asset metadata.
type MetaResponse struct {
	Universe []AssetUniverseEntry `json:"universe"`
}

// MetaAndAssetCtxsResponse includes universe meta plus per-asset context.
type MetaAndAssetCtxsResponse struct {
	Universe  []AssetUniverseEntry `json:"universe"`
	AssetCtxs []AssetCtx           `json:"assetCtxs"`
}

// UnmarshalJSON handles both legacy array and object payloads.
func (m *MetaAndAssetCtxsResponse) UnmarshalJSON(data []byte) error {
	// Primary format: {"universe":[...],"assetCtxs":[...]}
	type alias MetaAndAssetCtxsResponse
	var object alias
	if err := json.Unmarshal(data, &object); err == nil && (len(object.Universe) > 0 || len(object.AssetCtxs) > 0) {
		m.Universe = object.Universe
		m.AssetCtxs = object.AssetCtxs
		return nil
	}

	// Fallback: [ {"universe":[...]}, [{"..."}] ]
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hyperliquid: metaAndAssetCtxs decode: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("hyperliquid: metaAndAssetCtxs empty payload")
	}
	var universeHolder struct {
		Universe []AssetUniverseEntry `json:"universe"`
	}
	if err := json.Unmarshal(raw[0], &universeHolder); err != nil {
		return fmt.Errorf("hyperliquid: metaAndAssetCtxs universe: %w", err)
	}
	m.Universe = universeHolder.Universe

	if len(raw) > 1 {
		if err := json.Unmarshal(raw[1], &m.AssetCtxs); err != nil {
			return fmt.Errorf("hyperliquid: metaAndAssetCtxs assetCtxs: %w", err)
		}
	}
	return nil
}

// AssetUniverseEntry describes asset listing info from the meta endpoint.
type AssetUniverseEntry struct {
	Name         string  `json:"name"`
	SzDecimals   int     `json:"szDecimals"`
	MaxLeverage  float64 `json:"maxLeverage"`
	MarginTable  int     `json:"marginTableId"`
	OnlyIsolated bool    `json:"onlyIsolated"`
	IsDelisted   bool    `json:"isDelisted"`
}

// AssetCtx provides contextual info such as funding and mark price.
type AssetCtx struct {
	Funding      string   `json:"funding"`
	OpenInterest string   `json:"openInterest"`
	PrevDayPx    string   `json:"prevDayPx"`
	DayNtlVlm    string   `json:"dayNtlVlm"`
	DayBaseVlm   string   `json:"dayBaseVlm"`
	Premium      string   `json:"premium"`
	OraclePx     string   `json:"oraclePx"`
	MarkPx       string   `json:"markPx"`
	MidPx        string   `json:"midPx"`
	ImpactPxs    []string `json:"impactPxs"`
}

// SpotMetaResponse holds spot token and pair metadata.
type SpotMetaResponse struct {
	Tokens   []SpotToken         `json:"tokens"`
	Universe []SpotUniverseEntry `json:"universe"`
}

// SpotToken describes a spot token listing.
type SpotToken struct {
	Name        string `json:"name"`
	SzDecimals  int    `json:"szDecimals"`
	WeiDecimals int    `json:"weiDecimals"`
	Index       int    `json:"index"`
	TokenID     string `json:"tokenId"`
	IsCanonical bool   `json:"isCanonical"`
}

// SpotUniverseEntry describes a spot trading pair.
type SpotUniverseEntry struct {
	Name        string `json:"name"`
	Tokens      []int  `json:"tokens"`
	Index       int    `json:"index"`
	IsCanonical bool   `json:"isCanonical"`
}

// SpotMetaAndAssetCtxsResponse includes spot metadata plus per-pair context.
type SpotMetaAndAssetCtxsResponse struct {
	Meta      SpotMetaResponse
	AssetCtxs []SpotAssetCtx
}

// UnmarshalJSON accepts the venue's two-element array payload.
func (m *SpotMetaAndAssetCtxsResponse) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs decode: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs empty payload")
	}
	if err := json.Unmarshal(raw[0], &m.Meta); err != nil {
		return fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs meta: %w", err)
	}
	if len(raw) > 1 {
		if err := json.Unmarshal(raw[1], &m.AssetCtxs); err != nil {
			return fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs assetCtxs: %w", err)
		}
	}
	return nil
}

// SpotAssetCtx provides per-pair spot context such as the mark price.
type SpotAssetCtx struct {
	Coin      string `json:"coin"`
	MarkPx    string `json:"markPx"`
	MidPx     string `json:"midPx"`
	PrevDayPx string `json:"prevDayPx"`
}

// AssetInfo aggregates directory metadata for a tradable asset.
type AssetInfo struct {
	Name         string
	ID           int
	SzDecimals   int
	Kind         MarketKind
	MarkPx       string
	MidPx        string
	OraclePx     string
	MaxLeverage  float64
	OnlyIsolated bool
	IsDelisted   bool
}
