package hyperliquid

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"hlgw-api/pkg/exchange"
)

func TestInstantOrderFilledImmediately(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		orders := req.Action["orders"].([]any)
		wire := orders[0].(map[string]any)
		// Buy prices one tick below the 2412.7 mark.
		require.Equal(t, "2412.6", wire["p"])
		require.Equal(t, "Alo", wire["t"].(map[string]any)["limit"].(map[string]any)["tif"])
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"totalSz":"0.5","avgPx":"2412.6","oid":101}}]}}}`
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH",
		IsBuy:     true,
		Size:      exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(101), result.Oid)
	require.Equal(t, "filled", result.Status)
	require.False(t, result.TimedOut)
}

func TestInstantOrderSellPricesAboveMark(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		wire := req.Action["orders"].([]any)[0].(map[string]any)
		require.Equal(t, "2412.8", wire["p"])
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"totalSz":"0.5","avgPx":"2412.8","oid":102}}]}}}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH",
		IsBuy:     false,
		Size:      exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
}

func TestInstantOrderQuoteSizing(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		wire := req.Action["orders"].([]any)[0].(map[string]any)
		// 1000 / 2412.6 truncated to 4 size decimals.
		require.Equal(t, "0.4144", wire["s"])
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"totalSz":"0.4144","avgPx":"2412.6","oid":103}}]}}}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH",
		IsBuy:     true,
		Size:      exchange.SizeSpec{Quote: "1000"},
	})
	require.NoError(t, err)
}

func TestInstantOrderPercentSizing(t *testing.T) {
	venue := newStubVenue(t)
	venue.onInfo("clearinghouseState", func(call int, req map[string]any) (int, string) {
		return http.StatusOK, `{"marginSummary":{"accountValue":"10000","totalMarginUsed":"0","totalNtlPos":"0","totalRawUsd":"10000"},"crossMarginSummary":{"accountValue":"10000","totalMarginUsed":"0","totalNtlPos":"0","totalRawUsd":"10000"},"assetPositions":[],"withdrawable":"10000"}`
	})
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		wire := req.Action["orders"].([]any)[0].(map[string]any)
		// Fraction 0.5 of 10000 equity = 5000 quote, / 2412.6 = 2.0724.
		require.Equal(t, "2.0724", wire["s"])
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"totalSz":"2.0724","avgPx":"2412.6","oid":104}}]}}}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH",
		IsBuy:     true,
		Size:      exchange.SizeSpec{Percent: "0.5"},
	})
	require.NoError(t, err)
}

func TestInstantOrderPercentValidation(t *testing.T) {
	venue := newStubVenue(t)
	client, _ := newTestClient(t, venue)
	ctx := context.Background()

	_, err := client.InstantOrder(ctx, exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Percent: "1.5"},
	})
	require.ErrorIs(t, err, ErrInvalidPercent)

	// Whole percentages are not accepted, only fractions of equity.
	_, err = client.InstantOrder(ctx, exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Percent: "50"},
	})
	require.ErrorIs(t, err, ErrInvalidPercent)

	_, err = client.InstantOrder(ctx, exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Percent: "0"},
	})
	require.ErrorIs(t, err, ErrInvalidPercent)

	_, err = client.InstantOrder(ctx, exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{},
	})
	require.Error(t, err)

	_, err = client.InstantOrder(ctx, exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true,
		Size: exchange.SizeSpec{Base: "1", Quote: "100"},
	})
	require.Error(t, err)
}

func TestInstantOrderNoCollateral(t *testing.T) {
	venue := newStubVenue(t)
	venue.onInfo("clearinghouseState", func(call int, req map[string]any) (int, string) {
		return http.StatusOK, `{"marginSummary":{"accountValue":"0","totalMarginUsed":"0","totalNtlPos":"0","totalRawUsd":"0"},"crossMarginSummary":{"accountValue":"0","totalMarginUsed":"0","totalNtlPos":"0","totalRawUsd":"0"},"assetPositions":[],"withdrawable":"0"}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Percent: "0.5"},
	})
	require.ErrorIs(t, err, ErrNoCollateral)
}

func TestInstantOrderBelowMinNotional(t *testing.T) {
	venue := newStubVenue(t)
	client, _ := newTestClient(t, venue)

	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH",
		IsBuy:     true,
		Size:      exchange.SizeSpec{Base: "0.004"}, // ~9.65 notional at 2412.6
	})
	require.Error(t, err)

	var reject *RejectError
	require.ErrorAs(t, err, &reject)
	require.Equal(t, CodeOrderMinValue, reject.Code)
	require.Empty(t, venue.exchangeRequests("order"))
}

func TestInstantOrderFatalRejectionNotRetried(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Insufficient margin to place order."}]}}}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.Error(t, err)

	var reject *RejectError
	require.ErrorAs(t, err, &reject)
	require.Equal(t, CodeInsufficientMargin, reject.Code)
	require.Len(t, venue.exchangeRequests("order"), 1)
}

func TestInstantOrderPostOnlyRejectionRetries(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		if call == 0 {
			return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Post only order would have immediately matched, bbo was 2412.5"}]}}}`
		}
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"totalSz":"0.5","avgPx":"2412.6","oid":105}}]}}}`
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(105), result.Oid)
	require.Len(t, venue.exchangeRequests("order"), 2)
}

func TestInstantOrderRetriesExhausted(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, `{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Post only order would have immediately matched, bbo was 2412.5"}]}}}`
	})

	client, _ := newTestClient(t, venue)
	_, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName:  "ETH",
		IsBuy:      true,
		Size:       exchange.SizeSpec{Base: "0.5"},
		MaxRetries: 2,
	})
	require.Error(t, err)

	var reject *RejectError
	require.ErrorAs(t, err, &reject)
	require.Equal(t, CodePostOnlyRejected, reject.Code)
	// MaxRetries is the total attempt budget, not extra attempts on top.
	require.Len(t, venue.exchangeRequests("order"), 2)
}

func TestInstantOrderWaitsForFill(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, okOrderResponse(106)
	})
	venue.onInfo("orderStatus", func(call int, req map[string]any) (int, string) {
		if call < 2 {
			return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":106,"origSz":"0.5"},"status":"open","statusTimestamp":1700000000000}}`
		}
		return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0","oid":106,"origSz":"0.5"},"status":"filled","statusTimestamp":1700000030000}}`
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(106), result.Oid)
	require.Equal(t, "filled", result.Status)
	require.NotNil(t, result.Order)
	require.False(t, result.TimedOut)
}

func TestInstantOrderTimeoutCancels(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, okOrderResponse(107)
	})
	cancelled := false
	venue.onInfo("orderStatus", func(call int, req map[string]any) (int, string) {
		if cancelled {
			return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":107,"origSz":"0.5"},"status":"canceled","statusTimestamp":1700000045000}}`
		}
		return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":107,"origSz":"0.5"},"status":"open","statusTimestamp":1700000000000}}`
	})
	venue.onExchange("cancel", func(call int, req capturedRequest) (int, string) {
		cancelled = true
		return http.StatusOK, `{"status":"ok","response":{"type":"cancel","data":{"statuses":["success"]}}}`
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(107), result.Oid)
	// The status reported back reflects the venue after the cancel landed.
	require.Equal(t, "canceled", result.Status)
	require.True(t, result.TimedOut)
	require.True(t, result.CanceledByTimeout)
	require.Len(t, venue.exchangeRequests("cancel"), 1)
}

func TestInstantOrderTimeoutSkipsCancelWhenFilled(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, okOrderResponse(109)
	})
	filled := `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0","oid":109,"origSz":"0.5"},"status":"filled","statusTimestamp":1700000045000}}`
	open := `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":109,"origSz":"0.5"},"status":"open","statusTimestamp":1700000000000}}`
	venue.onInfo("orderStatus", func(call int, req map[string]any) (int, string) {
		// Open for every in-deadline poll, filled by the time the final
		// post-deadline check runs.
		if call < 6 {
			return http.StatusOK, open
		}
		return http.StatusOK, filled
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, "filled", result.Status)
	require.True(t, result.TimedOut)
	require.False(t, result.CanceledByTimeout)
	require.Empty(t, venue.exchangeRequests("cancel"))
}

func TestIsTerminalOrderStatus(t *testing.T) {
	for _, status := range []string{"filled", "triggered", "canceled", "rejected", "marginCanceled", "liquidatedCanceled", "minTradeNtlRejected"} {
		require.Truef(t, isTerminalOrderStatus(status), "status %q", status)
	}
	for _, status := range []string{"open", "queued", ""} {
		require.Falsef(t, isTerminalOrderStatus(status), "status %q", status)
	}
}

func TestInstantOrderTriggeredIsTerminal(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("order", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, okOrderResponse(108)
	})
	venue.onInfo("orderStatus", func(call int, req map[string]any) (int, string) {
		if call == 0 {
			return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":108,"origSz":"0.5"},"status":"open","statusTimestamp":1700000000000}}`
		}
		return http.StatusOK, `{"status":"order","order":{"order":{"coin":"ETH","side":"B","limitPx":"2412.6","sz":"0.5","oid":108,"origSz":"0.5"},"status":"triggered","statusTimestamp":1700000010000}}`
	})

	client, _ := newTestClient(t, venue)
	result, err := client.InstantOrder(context.Background(), exchange.InstantOrderParams{
		AssetName: "ETH", IsBuy: true, Size: exchange.SizeSpec{Base: "0.5"},
	})
	require.NoError(t, err)
	require.Equal(t, "triggered", result.Status)
	require.False(t, result.TimedOut)
	require.False(t, result.CanceledByTimeout)
	require.Empty(t, venue.exchangeRequests("cancel"))
}

func TestClassifyRejection(t *testing.T) {
	tests := map[string]string{
		"Order must have minimum value of $10": CodeOrderMinValue,
		"Insufficient margin to place order":   CodeInsufficientMargin,
		"Post only order would have matched":   CodePostOnlyRejected,
		"Ioc order would not fill":             CodeIocRejected,
		"Invalid trigger price":                CodeBadTriggerPrice,
		"Something unexpected":                 CodeInstantOrderFailed,
	}
	for message, expected := range tests {
		reject := classifyRejection(message)
		require.Equalf(t, expected, reject.Code, "classifyRejection(%q)", message)
		require.Equal(t, message, reject.Message)
	}

	require.True(t, classifyRejection("post only").Retryable())
	require.True(t, classifyRejection("ioc cancel").Retryable())
	require.False(t, classifyRejection("minimum value").Retryable())
	require.False(t, classifyRejection("insufficient margin").Retryable())
}
