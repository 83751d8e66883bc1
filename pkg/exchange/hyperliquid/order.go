package hyperliquid

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"hlgw-api/pkg/exchange"
)

var cloidPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{32}$`)

// GenerateCloid returns a random 128-bit client order id in 0x-hex form.
func GenerateCloid() string {
	id := uuid.New()
	return "0x" + hex.EncodeToString(id[:])
}

// PlaceOrder submits a single order to the exchange endpoint.
func (c *Client) PlaceOrder(ctx context.Context, order exchange.Order) (*exchange.OrderResponse, error) {
	return c.PlaceOrders(ctx, []exchange.Order{order})
}

// PlaceOrders submits multiple orders atomically.
func (c *Client) PlaceOrders(ctx context.Context, orders []exchange.Order) (*exchange.OrderResponse, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("hyperliquid: at least one order required")
	}
	wires := make([]OrderWire, 0, len(orders))
	for _, order := range orders {
		wire, err := c.convertToWire(ctx, order)
		if err != nil {
			return nil, err
		}
		wires = append(wires, wire)
	}
	action := OrderAction{Type: "order", Orders: wires, Grouping: "na"}
	body, err := c.doExchangeRequest(ctx, action)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(body)
}

// convertToWire resolves the asset and applies the venue's formatting rules.
func (c *Client) convertToWire(ctx context.Context, order exchange.Order) (OrderWire, error) {
	info, err := c.GetAssetInfo(ctx, order.AssetName)
	if err != nil {
		return OrderWire{}, err
	}

	limit, trigger := order.OrderType.Limit, order.OrderType.Trigger
	if (limit == nil) == (trigger == nil) {
		return OrderWire{}, fmt.Errorf("hyperliquid: order for %s must set exactly one of limit or trigger", order.AssetName)
	}

	px, err := FormatPrice(order.LimitPx, info.SzDecimals, info.Kind)
	if err != nil {
		return OrderWire{}, err
	}
	sz, err := FormatSize(order.Sz, info.SzDecimals)
	if err != nil {
		return OrderWire{}, err
	}

	wire := OrderWire{
		Asset:      info.ID,
		IsBuy:      order.IsBuy,
		LimitPx:    px,
		Sz:         sz,
		ReduceOnly: order.ReduceOnly,
	}
	if limit != nil {
		wire.OrderType.Limit = &LimitOrderType{TIF: limit.TIF}
	} else {
		triggerPx, err := FormatPrice(trigger.TriggerPx, info.SzDecimals, info.Kind)
		if err != nil {
			return OrderWire{}, err
		}
		wire.OrderType.Trigger = &TriggerOrderType{
			IsMarket:  trigger.IsMarket,
			TriggerPx: triggerPx,
			Tpsl:      trigger.Tpsl,
		}
	}
	if order.Cloid != "" {
		if !cloidPattern.MatchString(order.Cloid) {
			return OrderWire{}, fmt.Errorf("hyperliquid: invalid cloid %q", order.Cloid)
		}
		wire.Cloid = order.Cloid
	}
	return wire, nil
}

func buildOrderResponse(body *exchangeResponseBody) (*exchange.OrderResponse, error) {
	resp := &exchange.OrderResponse{Status: "ok"}
	if body == nil {
		return resp, nil
	}
	resp.Response.Type = body.Type
	statuses, err := parseOrderStatuses(body.Data.Statuses)
	if err != nil {
		return nil, err
	}
	resp.Response.Data.Statuses = statuses
	return resp, nil
}

func parseOrderStatuses(raw []json.RawMessage) ([]exchange.OrderStatusResponse, error) {
	statuses := make([]exchange.OrderStatusResponse, 0, len(raw))
	for _, item := range raw {
		var status exchange.OrderStatusResponse
		if err := json.Unmarshal(item, &status); err != nil {
			return nil, fmt.Errorf("hyperliquid: decode order status: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// CancelOrder cancels a single resting order by name and oid.
func (c *Client) CancelOrder(ctx context.Context, assetName string, oid int64) error {
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	return c.CancelOrders(ctx, []CancelWire{{Asset: info.ID, Oid: oid}})
}

// CancelOrders executes batch cancellations. Every item must succeed.
func (c *Client) CancelOrders(ctx context.Context, cancels []CancelWire) error {
	if len(cancels) == 0 {
		return nil
	}
	action := CancelAction{Type: "cancel", Cancels: cancels}
	body, err := c.doExchangeRequest(ctx, action)
	if err != nil {
		return err
	}
	return checkCancelStatuses(body)
}

// CancelByCloid cancels an order identified by client order id.
func (c *Client) CancelByCloid(ctx context.Context, assetName string, cloid string) error {
	if !cloidPattern.MatchString(cloid) {
		return fmt.Errorf("hyperliquid: invalid cloid %q", cloid)
	}
	info, err := c.GetAssetInfo(ctx, assetName)
	if err != nil {
		return err
	}
	action := CancelByCloidAction{
		Type:    "cancelByCloid",
		Cancels: []CancelByCloidWire{{Asset: info.ID, Cloid: cloid}},
	}
	body, err := c.doExchangeRequest(ctx, action)
	if err != nil {
		return err
	}
	return checkCancelStatuses(body)
}

func checkCancelStatuses(body *exchangeResponseBody) error {
	if body == nil {
		return nil
	}
	for i, raw := range body.Data.Statuses {
		var status CancelStatus
		if err := json.Unmarshal(raw, &status); err != nil {
			return err
		}
		if !status.Success {
			return fmt.Errorf("hyperliquid: cancel %d failed: %s", i, status.Error)
		}
	}
	return nil
}

// GetOpenOrders returns the account's open orders with trigger metadata.
func (c *Client) GetOpenOrders(ctx context.Context) ([]exchange.FrontendOpenOrder, error) {
	var out []exchange.FrontendOpenOrder
	req := InfoRequest{Type: "frontendOpenOrders", User: c.getInfoAddress()}
	if err := c.doInfoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrderStatus looks up the lifecycle state of an order by oid.
func (c *Client) GetOrderStatus(ctx context.Context, oid int64) (*exchange.OrderStatusQuery, error) {
	return c.getOrderStatus(ctx, oid)
}

// GetOrderStatusByCloid looks up the lifecycle state of an order by cloid.
func (c *Client) GetOrderStatusByCloid(ctx context.Context, cloid string) (*exchange.OrderStatusQuery, error) {
	if !cloidPattern.MatchString(cloid) {
		return nil, fmt.Errorf("hyperliquid: invalid cloid %q", cloid)
	}
	return c.getOrderStatus(ctx, cloid)
}

func (c *Client) getOrderStatus(ctx context.Context, oid any) (*exchange.OrderStatusQuery, error) {
	var out exchange.OrderStatusQuery
	req := InfoRequest{Type: "orderStatus", User: c.getInfoAddress(), Oid: oid}
	if err := c.doInfoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
