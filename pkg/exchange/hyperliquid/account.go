package hyperliquid

import (
	"context"
	"fmt"

	"hlgw-api/pkg/exchange"
)

// GetAccountState retrieves the perp clearinghouse state for the account.
func (c *Client) GetAccountState(ctx context.Context) (*exchange.AccountState, error) {
	var out exchange.AccountState
	req := InfoRequest{Type: "clearinghouseState", User: c.getInfoAddress()}
	if err := c.doInfoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSpotBalances retrieves the account's spot token balances.
func (c *Client) GetSpotBalances(ctx context.Context) (*exchange.SpotState, error) {
	var out exchange.SpotState
	req := InfoRequest{Type: "spotClearinghouseState", User: c.getInfoAddress()}
	if err := c.doInfoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccountValue returns the account equity as a decimal string.
func (c *Client) GetAccountValue(ctx context.Context) (string, error) {
	state, err := c.GetAccountState(ctx)
	if err != nil {
		return "", err
	}
	value := state.MarginSummary.AccountValue
	if value == "" {
		return "", fmt.Errorf("hyperliquid: account value missing from clearinghouse state")
	}
	return value, nil
}

// GetUserFills retrieves recent fills, optionally aggregated by time.
func (c *Client) GetUserFills(ctx context.Context, aggregateByTime bool) ([]exchange.Fill, error) {
	var out []exchange.Fill
	req := InfoRequest{Type: "userFills", User: c.getInfoAddress(), AggregateByTime: aggregateByTime}
	if err := c.doInfoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
