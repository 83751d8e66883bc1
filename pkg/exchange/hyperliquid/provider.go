package hyperliquid

import (
	"context"
	"net/http"

	"hlgw-api/pkg/exchange"
)

// Provider wraps Client to satisfy the exchange.Provider interface.
type Provider struct {
	client *Client
}

// NewProvider constructs a Hyperliquid exchange provider.
func NewProvider(privateKeyHex string, isTestnet bool, opts ...ClientOption) (*Provider, error) {
	client, err := NewClient(privateKeyHex, isTestnet, opts...)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

// Client exposes the underlying venue client for venue-specific calls.
func (p *Provider) Client() *Client {
	return p.client
}

func init() {
	exchange.RegisterProvider("hyperliquid", func(name string, cfg *exchange.ProviderConfig) (exchange.Provider, error) {
		opts := []ClientOption{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		if cfg.VaultAddress != "" {
			opts = append(opts, WithVaultAddress(cfg.VaultAddress))
		}
		if cfg.MainAddress != "" {
			opts = append(opts, WithMainAddress(cfg.MainAddress))
		}
		return NewProvider(cfg.PrivateKey, cfg.Testnet, opts...)
	})
}

// PlaceOrder delegates to the underlying client.
func (p *Provider) PlaceOrder(ctx context.Context, order exchange.Order) (*exchange.OrderResponse, error) {
	return p.client.PlaceOrder(ctx, order)
}

// CancelOrder cancels a single order.
func (p *Provider) CancelOrder(ctx context.Context, assetName string, oid int64) error {
	return p.client.CancelOrder(ctx, assetName, oid)
}

// GetOpenOrders returns currently resting orders.
func (p *Provider) GetOpenOrders(ctx context.Context) ([]exchange.FrontendOpenOrder, error) {
	return p.client.GetOpenOrders(ctx)
}

// GetOrderStatus looks up an order's lifecycle state.
func (p *Provider) GetOrderStatus(ctx context.Context, oid int64) (*exchange.OrderStatusQuery, error) {
	return p.client.GetOrderStatus(ctx, oid)
}

// InstantOrder runs the market-equivalent execution engine.
func (p *Provider) InstantOrder(ctx context.Context, params exchange.InstantOrderParams) (*exchange.InstantOrderResult, error) {
	return p.client.InstantOrder(ctx, params)
}

// ReconcileProtectiveOrders drives resting TP/SL orders toward a desired set.
func (p *Provider) ReconcileProtectiveOrders(ctx context.Context, params exchange.BatchProtectiveParams) (*exchange.ProtectiveResult, error) {
	return p.client.ReconcileProtectiveOrders(ctx, params)
}

// GetAccountState returns current account state.
func (p *Provider) GetAccountState(ctx context.Context) (*exchange.AccountState, error) {
	return p.client.GetAccountState(ctx)
}

// GetUserFills returns recent fills for the account.
func (p *Provider) GetUserFills(ctx context.Context, aggregateByTime bool) ([]exchange.Fill, error) {
	return p.client.GetUserFills(ctx, aggregateByTime)
}

// UpdateLeverage updates leverage configuration.
func (p *Provider) UpdateLeverage(ctx context.Context, assetName string, isCross bool, leverage int) error {
	return p.client.UpdateLeverage(ctx, assetName, isCross, leverage)
}
