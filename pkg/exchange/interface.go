package exchange

import "context"

// Provider exposes the gateway's trading capabilities in a venue-agnostic
// fashion. All blocking operations take a context and every suspension point
// inside an implementation must be bounded by it.
type Provider interface {
	// Order management.
	PlaceOrder(ctx context.Context, order Order) (*OrderResponse, error)
	CancelOrder(ctx context.Context, assetName string, oid int64) error
	GetOpenOrders(ctx context.Context) ([]FrontendOpenOrder, error)
	GetOrderStatus(ctx context.Context, oid int64) (*OrderStatusQuery, error)

	// Execution engines.
	InstantOrder(ctx context.Context, params InstantOrderParams) (*InstantOrderResult, error)
	ReconcileProtectiveOrders(ctx context.Context, params BatchProtectiveParams) (*ProtectiveResult, error)

	// Account information.
	GetAccountState(ctx context.Context) (*AccountState, error)
	GetUserFills(ctx context.Context, aggregateByTime bool) ([]Fill, error)

	// Position management.
	UpdateLeverage(ctx context.Context, assetName string, isCross bool, leverage int) error
}
