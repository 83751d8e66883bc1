package types

// Request and response shapes for the gateway's REST surface.

type InstantOrderReq struct {
	Asset      string `json:"asset"`
	IsBuy      bool   `json:"isBuy"`
	Base       string `json:"base,optional"`
	Quote      string `json:"quote,optional"`
	Percent    string `json:"percent,optional"`
	ReduceOnly bool   `json:"reduceOnly,optional"`

	MaxRetries     int   `json:"maxRetries,optional"`
	RetryDelayMs   int64 `json:"retryDelayMs,optional"`
	PollIntervalMs int64 `json:"pollIntervalMs,optional"`
	TimeoutMs      int64 `json:"timeoutMs,optional"`
}

type InstantOrderResp struct {
	Oid               int64  `json:"oid"`
	Status            string `json:"status"`
	TimedOut          bool   `json:"timedOut"`
	CanceledByTimeout bool   `json:"canceledByTimeout"`
}

type ProtectiveLevel struct {
	Price    string `json:"price"`
	Sz       string `json:"sz"`
	IsMarket *bool  `json:"isMarket,optional"`
}

type ProtectiveOrdersReq struct {
	Asset string            `json:"asset"`
	IsBuy bool              `json:"isBuy"`
	TP    []ProtectiveLevel `json:"tp,optional"`
	SL    []ProtectiveLevel `json:"sl,optional"`
}

type ProtectiveKindResp struct {
	Created   []int64 `json:"created"`
	Updated   []int64 `json:"updated"`
	Cancelled []int64 `json:"cancelled"`
}

type ProtectiveOrdersResp struct {
	TP ProtectiveKindResp `json:"tp"`
	SL ProtectiveKindResp `json:"sl"`
}

type OrderStatusReq struct {
	Oid int64 `path:"oid"`
}

type CancelOrderReq struct {
	Asset string `json:"asset"`
	Oid   int64  `json:"oid"`
}

type UpdateLeverageReq struct {
	Asset    string `json:"asset"`
	IsCross  bool   `json:"isCross"`
	Leverage int    `json:"leverage"`
}

type UserFillsReq struct {
	AggregateByTime bool `form:"aggregateByTime,optional"`
}
