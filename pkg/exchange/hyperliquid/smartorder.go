package hyperliquid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hlgw-api/pkg/exchange"
)

const (
	defaultInstantRetries   = 6
	defaultInstantRetryWait = 7500 * time.Millisecond
	defaultInstantPoll      = 7500 * time.Millisecond
	defaultInstantTimeout   = 45 * time.Second

	minOrderNotional = "10"
	quoteDecimals    = 6
)

// isTerminalOrderStatus reports whether an orderStatus value ends the poll
// loop. Fills and triggers are terminal, as is every cancellation or
// rejection variant ("marginCanceled", "siblingFilledCanceled", ...).
// Anything else keeps the loop going.
func isTerminalOrderStatus(status string) bool {
	switch status {
	case "filled", "triggered", "canceled", "rejected":
		return true
	}
	return strings.HasSuffix(status, "Canceled") || strings.HasSuffix(status, "Rejected")
}

// InstantOrder places a market-equivalent order as a post-only limit one tick
// inside the spread, replacing it at a fresh price on post-only rejections,
// then waits for a terminal status. On timeout the order is cancelled best
// effort and the last observed status is returned.
func (c *Client) InstantOrder(ctx context.Context, params exchange.InstantOrderParams) (*exchange.InstantOrderResult, error) {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultInstantRetries
	}
	retryWait := defaultInstantRetryWait
	if params.RetryDelayMs > 0 {
		retryWait = time.Duration(params.RetryDelayMs) * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, retryWait); err != nil {
				return nil, err
			}
		}

		status, err := c.submitInstantAttempt(ctx, params)
		if err != nil {
			var reject *RejectError
			if errors.As(err, &reject) && reject.Retryable() {
				c.logf("hyperliquid: instant order attempt %d rejected (%s), replacing at fresh price", attempt+1, reject.Code)
				lastErr = err
				continue
			}
			return nil, err
		}

		if status.Filled != nil {
			return &exchange.InstantOrderResult{Oid: status.Filled.Oid, Status: "filled"}, nil
		}
		return c.waitForOrderFinalStatus(ctx, params, status.Oid())
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &RejectError{Code: CodeInstantOrderFailed, Message: "retries exhausted"}
}

// submitInstantAttempt resolves a fresh price and size from the current mark
// and submits one post-only order.
func (c *Client) submitInstantAttempt(ctx context.Context, params exchange.InstantOrderParams) (*exchange.OrderStatusResponse, error) {
	// Force a directory refresh so each attempt prices off the live mark.
	if err := c.RefreshAssets(ctx); err != nil {
		return nil, err
	}
	info, err := c.GetAssetInfo(ctx, params.AssetName)
	if err != nil {
		return nil, err
	}
	if info.MarkPx == "" {
		return nil, fmt.Errorf("hyperliquid: no mark price for %s", params.AssetName)
	}

	below, above, err := TickAround(info.MarkPx)
	if err != nil {
		return nil, err
	}
	rawPx := above
	if params.IsBuy {
		rawPx = below
	}
	px, err := FormatPrice(rawPx, info.SzDecimals, info.Kind)
	if err != nil {
		return nil, err
	}

	rawSz, err := c.resolveBaseSize(ctx, params.Size, px, info.SzDecimals)
	if err != nil {
		return nil, err
	}
	sz, err := FormatSize(rawSz, info.SzDecimals)
	if err != nil {
		return nil, err
	}

	notional, err := MultiplyFixed(px, sz, int32(info.SzDecimals))
	if err != nil {
		return nil, err
	}
	if tooSmall, err := LessOrEqual(notional, minOrderNotional); err != nil {
		return nil, err
	} else if tooSmall {
		return nil, &RejectError{
			Code:    CodeOrderMinValue,
			Message: fmt.Sprintf("notional %s below venue minimum %s", notional, minOrderNotional),
		}
	}

	resp, err := c.PlaceOrder(ctx, exchange.Order{
		AssetName:  params.AssetName,
		IsBuy:      params.IsBuy,
		LimitPx:    px,
		Sz:         sz,
		ReduceOnly: params.ReduceOnly,
		OrderType:  exchange.LimitType("Alo"),
	})
	if err != nil {
		return nil, err
	}
	statuses := resp.Response.Data.Statuses
	if len(statuses) == 0 {
		return nil, fmt.Errorf("hyperliquid: order response carried no statuses")
	}
	status := statuses[0]
	if status.Error != "" {
		return nil, classifyRejection(status.Error)
	}
	if status.Oid() == 0 {
		return nil, fmt.Errorf("hyperliquid: order response carried no oid")
	}
	return &status, nil
}

// resolveBaseSize converts a size spec to a base quantity at the given price.
func (c *Client) resolveBaseSize(ctx context.Context, size exchange.SizeSpec, px string, szDecimals int) (string, error) {
	set := 0
	if size.Base != "" {
		set++
	}
	if size.Quote != "" {
		set++
	}
	if size.Percent != "" {
		set++
	}
	if set != 1 {
		return "", fmt.Errorf("hyperliquid: size spec must set exactly one of base, quote or percent")
	}

	switch {
	case size.Base != "":
		return size.Base, nil
	case size.Quote != "":
		return DivideFixed(size.Quote, px, int32(szDecimals))
	default:
		quote, err := c.quoteFromPercent(ctx, size.Percent)
		if err != nil {
			return "", err
		}
		return DivideFixed(quote, px, int32(szDecimals))
	}
}

// quoteFromPercent turns an equity fraction in (0, 1] into a quote amount.
func (c *Client) quoteFromPercent(ctx context.Context, percent string) (string, error) {
	pct, err := ParseDecimal(percent)
	if err != nil {
		return "", err
	}
	if !pct.IsPositive() || pct.GreaterThan(decimal.NewFromInt(1)) {
		return "", fmt.Errorf("%w: got %s", ErrInvalidPercent, percent)
	}

	equity, err := c.GetAccountValue(ctx)
	if err != nil {
		return "", err
	}
	eq, err := ParseDecimal(equity)
	if err != nil {
		return "", err
	}
	if !eq.IsPositive() {
		return "", ErrNoCollateral
	}
	return eq.Mul(pct).Truncate(quoteDecimals).String(), nil
}

// waitForOrderFinalStatus polls until the order reaches a terminal status or
// the deadline passes. On timeout the order is cancelled best effort.
func (c *Client) waitForOrderFinalStatus(ctx context.Context, params exchange.InstantOrderParams, oid int64) (*exchange.InstantOrderResult, error) {
	poll := defaultInstantPoll
	if params.PollIntervalMs > 0 {
		poll = time.Duration(params.PollIntervalMs) * time.Millisecond
	}
	timeout := defaultInstantTimeout
	if params.TimeoutMs > 0 {
		timeout = time.Duration(params.TimeoutMs) * time.Millisecond
	}
	deadline := c.clock().Add(timeout)

	result := &exchange.InstantOrderResult{Oid: oid, Status: "open"}
	for c.clock().Before(deadline) {
		if c.refreshOrderResult(ctx, oid, result) && isTerminalOrderStatus(result.Status) {
			return result, nil
		}
		if err := c.sleep(ctx, poll); err != nil {
			return nil, err
		}
	}

	result.TimedOut = true
	c.refreshOrderResult(ctx, oid, result)
	if result.Status != "open" {
		return result, nil
	}

	if err := c.CancelOrder(ctx, params.AssetName, oid); err != nil {
		c.logf("hyperliquid: timeout cancel of order %d failed: %v", oid, err)
	} else {
		result.CanceledByTimeout = true
	}
	// Report whatever the venue settled on, cancelled or not.
	c.refreshOrderResult(ctx, oid, result)
	return result, nil
}

// refreshOrderResult fetches the order's current status into result,
// reporting whether a status was observed. Poll failures are logged and
// leave the last observation in place.
func (c *Client) refreshOrderResult(ctx context.Context, oid int64, result *exchange.InstantOrderResult) bool {
	query, err := c.GetOrderStatus(ctx, oid)
	if err != nil {
		c.logf("hyperliquid: order %d status poll failed: %v", oid, err)
		return false
	}
	if query.Status != "order" || query.Order == nil {
		return false
	}
	result.Status = query.Order.Status
	result.Order = query.Order
	return true
}
