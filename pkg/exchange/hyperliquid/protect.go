package hyperliquid

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hlgw-api/pkg/exchange"
)

// protectiveKind distinguishes take-profit and stop-loss reconciliation.
type protectiveKind string

const (
	kindTakeProfit protectiveKind = "tp"
	kindStopLoss   protectiveKind = "sl"
)

// desiredProtective is a protective spec normalized to venue formatting.
type desiredProtective struct {
	price    string
	sz       string
	isMarket bool
}

// PlaceProtectiveOrder submits a single reduce-only trigger order.
func (c *Client) PlaceProtectiveOrder(ctx context.Context, assetName string, isBuy bool, kind string, spec exchange.ProtectiveSpec) (*exchange.OrderResponse, error) {
	if kind != string(kindTakeProfit) && kind != string(kindStopLoss) {
		return nil, fmt.Errorf("hyperliquid: protective kind must be tp or sl, got %q", kind)
	}
	isMarket := spec.IsMarket == nil || *spec.IsMarket
	return c.PlaceOrder(ctx, exchange.Order{
		AssetName:  assetName,
		IsBuy:      isBuy,
		LimitPx:    spec.Price,
		Sz:         spec.Sz,
		ReduceOnly: true,
		OrderType:  exchange.TriggerType(isMarket, spec.Price, kind),
	})
}

// ReconcileProtectiveOrders drives the account's resting TP/SL orders for one
// asset and side toward the desired set. Matching orders are left alone,
// mismatched ones are modified in place, surplus existing orders cancelled
// and surplus desired levels created. Failures on individual items are logged
// and skipped so the rest of the pass still lands.
func (c *Client) ReconcileProtectiveOrders(ctx context.Context, params exchange.BatchProtectiveParams) (*exchange.ProtectiveResult, error) {
	info, err := c.GetAssetInfo(ctx, params.AssetName)
	if err != nil {
		return nil, err
	}
	open, err := c.GetOpenOrders(ctx)
	if err != nil {
		return nil, err
	}

	coin := coinFromAssetName(params.AssetName)
	side := "A"
	if params.IsBuy {
		side = "B"
	}
	existingByKind := map[protectiveKind][]exchange.FrontendOpenOrder{}
	for _, order := range open {
		if order.Coin != coin || order.Side != side || !order.IsTrigger || !order.ReduceOnly {
			continue
		}
		kind := classifyTriggerKind(order.OrderType)
		existingByKind[kind] = append(existingByKind[kind], order)
	}

	result := &exchange.ProtectiveResult{}
	result.TP = c.reconcileKind(ctx, params, info, kindTakeProfit, params.TP, existingByKind[kindTakeProfit])
	result.SL = c.reconcileKind(ctx, params, info, kindStopLoss, params.SL, existingByKind[kindStopLoss])
	return result, nil
}

// classifyTriggerKind maps the frontend order type label to a kind.
func classifyTriggerKind(orderType string) protectiveKind {
	lower := strings.ToLower(orderType)
	if strings.Contains(lower, "take profit") {
		return kindTakeProfit
	}
	return kindStopLoss
}

func coinFromAssetName(assetName string) string {
	if idx := strings.IndexByte(assetName, '/'); idx >= 0 {
		return assetName[:idx]
	}
	return assetName
}

func (c *Client) reconcileKind(ctx context.Context, params exchange.BatchProtectiveParams, info AssetInfo, kind protectiveKind, specs []exchange.ProtectiveSpec, existing []exchange.FrontendOpenOrder) exchange.ProtectiveKindResult {
	result := exchange.ProtectiveKindResult{}

	desired := make([]desiredProtective, 0, len(specs))
	for _, spec := range specs {
		price, err := FormatPrice(spec.Price, info.SzDecimals, info.Kind)
		if err != nil {
			c.logf("hyperliquid: %s reconcile skipping level %s: %v", kind, spec.Price, err)
			continue
		}
		sz, err := FormatSize(spec.Sz, info.SzDecimals)
		if err != nil {
			c.logf("hyperliquid: %s reconcile skipping level %s: %v", kind, spec.Price, err)
			continue
		}
		desired = append(desired, desiredProtective{
			price:    price,
			sz:       sz,
			isMarket: spec.IsMarket == nil || *spec.IsMarket,
		})
	}

	// Take-profits sort ascending for a buy side and descending for a sell,
	// stops the mirror. Positional pairing then matches levels that mean the
	// same thing on both sides.
	ascending := params.IsBuy
	if kind == kindStopLoss {
		ascending = !params.IsBuy
	}
	sortDesired(desired, ascending)
	sortExisting(existing, ascending)

	var modifies []Modify
	var modifyOids []int64
	pairs := len(desired)
	if len(existing) < pairs {
		pairs = len(existing)
	}
	for i := 0; i < pairs; i++ {
		if protectiveMatches(desired[i], existing[i], info) {
			continue
		}
		modifies = append(modifies, Modify{
			Oid:   existing[i].Oid,
			Order: protectiveOrder(params, desired[i], kind),
		})
		modifyOids = append(modifyOids, existing[i].Oid)
	}

	if len(modifies) > 0 {
		resp, err := c.BatchModifyOrders(ctx, modifies)
		if err != nil {
			c.logf("hyperliquid: %s reconcile batch modify failed: %v", kind, err)
		} else {
			for i, status := range resp.Response.Data.Statuses {
				if i >= len(modifyOids) {
					break
				}
				if status.Error != "" {
					c.logf("hyperliquid: %s reconcile modify of %d rejected: %s", kind, modifyOids[i], status.Error)
					continue
				}
				oid := status.Oid()
				if oid == 0 {
					oid = modifyOids[i]
				}
				result.Updated = append(result.Updated, oid)
			}
		}
	}

	if len(existing) > pairs {
		var cancels []CancelWire
		var cancelOids []int64
		for _, order := range existing[pairs:] {
			cancels = append(cancels, CancelWire{Asset: info.ID, Oid: order.Oid})
			cancelOids = append(cancelOids, order.Oid)
		}
		if err := c.CancelOrders(ctx, cancels); err != nil {
			c.logf("hyperliquid: %s reconcile cancel failed: %v", kind, err)
		} else {
			result.Cancelled = append(result.Cancelled, cancelOids...)
		}
	}

	for _, level := range desired[pairs:] {
		resp, err := c.PlaceOrder(ctx, protectiveOrder(params, level, kind))
		if err != nil {
			c.logf("hyperliquid: %s reconcile create at %s failed: %v", kind, level.price, err)
			continue
		}
		statuses := resp.Response.Data.Statuses
		if len(statuses) == 0 || statuses[0].Error != "" {
			c.logf("hyperliquid: %s reconcile create at %s rejected", kind, level.price)
			continue
		}
		result.Created = append(result.Created, statuses[0].Oid())
	}

	return result
}

func protectiveOrder(params exchange.BatchProtectiveParams, level desiredProtective, kind protectiveKind) exchange.Order {
	return exchange.Order{
		AssetName:  params.AssetName,
		IsBuy:      params.IsBuy,
		LimitPx:    level.price,
		Sz:         level.sz,
		ReduceOnly: true,
		OrderType:  exchange.TriggerType(level.isMarket, level.price, string(kind)),
	}
}

// protectiveMatches reports whether a resting order already expresses the
// desired level. Both sides are compared in formatted form so "2412.50" and
// "2412.5" agree.
func protectiveMatches(level desiredProtective, order exchange.FrontendOpenOrder, info AssetInfo) bool {
	existingPx, err := FormatPrice(order.TriggerPx, info.SzDecimals, info.Kind)
	if err != nil {
		return false
	}
	existingSz, err := FormatSize(order.Sz, info.SzDecimals)
	if err != nil {
		return false
	}
	existingMarket := strings.Contains(strings.ToLower(order.OrderType), "market")
	return existingPx == level.price && existingSz == level.sz && existingMarket == level.isMarket
}

func sortDesired(levels []desiredProtective, ascending bool) {
	sort.SliceStable(levels, func(i, j int) bool {
		a, errA := ParseDecimal(levels[i].price)
		b, errB := ParseDecimal(levels[j].price)
		if errA != nil || errB != nil {
			return false
		}
		if ascending {
			return a.LessThan(b)
		}
		return a.GreaterThan(b)
	})
}

func sortExisting(orders []exchange.FrontendOpenOrder, ascending bool) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, errA := ParseDecimal(orders[i].TriggerPx)
		b, errB := ParseDecimal(orders[j].TriggerPx)
		if errA != nil || errB != nil {
			return false
		}
		if ascending {
			return a.LessThan(b)
		}
		return a.GreaterThan(b)
	})
}
