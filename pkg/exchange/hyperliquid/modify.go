package hyperliquid

import (
	"context"
	"fmt"

	"hlgw-api/pkg/exchange"
)

// Modify pairs an existing order id (oid int64 or cloid string) with its
// replacement order.
type Modify struct {
	Oid   any
	Order exchange.Order
}

func validateModifyOid(oid any) error {
	switch v := oid.(type) {
	case int64:
		if v <= 0 {
			return fmt.Errorf("hyperliquid: modify oid must be positive, got %d", v)
		}
	case int:
		if v <= 0 {
			return fmt.Errorf("hyperliquid: modify oid must be positive, got %d", v)
		}
	case string:
		if !cloidPattern.MatchString(v) {
			return fmt.Errorf("hyperliquid: invalid cloid %q", v)
		}
	default:
		return fmt.Errorf("hyperliquid: modify oid must be int64 or cloid string, got %T", oid)
	}
	return nil
}

// ModifyOrder replaces a single resting order in place.
func (c *Client) ModifyOrder(ctx context.Context, oid any, order exchange.Order) (*exchange.OrderResponse, error) {
	if err := validateModifyOid(oid); err != nil {
		return nil, err
	}
	wire, err := c.convertToWire(ctx, order)
	if err != nil {
		return nil, err
	}
	action := ModifyAction{Type: "modify", Oid: oid, Order: wire}
	body, err := c.doExchangeRequest(ctx, action)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(body)
}

// BatchModifyOrders replaces multiple resting orders in one action.
func (c *Client) BatchModifyOrders(ctx context.Context, modifies []Modify) (*exchange.OrderResponse, error) {
	if len(modifies) == 0 {
		return nil, fmt.Errorf("hyperliquid: at least one modify required")
	}
	wires := make([]ModifyWire, 0, len(modifies))
	for _, m := range modifies {
		if err := validateModifyOid(m.Oid); err != nil {
			return nil, err
		}
		wire, err := c.convertToWire(ctx, m.Order)
		if err != nil {
			return nil, err
		}
		wires = append(wires, ModifyWire{Oid: m.Oid, Order: wire})
	}
	action := BatchModifyAction{Type: "batchModify", Modifies: wires}
	body, err := c.doExchangeRequest(ctx, action)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(body)
}
