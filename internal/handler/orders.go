package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"hlgw-api/internal/svc"
	"hlgw-api/internal/types"
	"hlgw-api/pkg/exchange"
)

// InstantOrderHandler runs the market-equivalent execution engine.
func InstantOrderHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.InstantOrderReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		result, err := serverCtx.DefaultExchange.InstantOrder(r.Context(), exchange.InstantOrderParams{
			AssetName:  req.Asset,
			IsBuy:      req.IsBuy,
			ReduceOnly: req.ReduceOnly,
			Size: exchange.SizeSpec{
				Base:    req.Base,
				Quote:   req.Quote,
				Percent: req.Percent,
			},
			MaxRetries:     req.MaxRetries,
			RetryDelayMs:   req.RetryDelayMs,
			PollIntervalMs: req.PollIntervalMs,
			TimeoutMs:      req.TimeoutMs,
		})
		if err != nil {
			logx.WithContext(r.Context()).Errorf("instant order %s failed: %v", req.Asset, err)
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, types.InstantOrderResp{
			Oid:               result.Oid,
			Status:            result.Status,
			TimedOut:          result.TimedOut,
			CanceledByTimeout: result.CanceledByTimeout,
		})
	}
}

// ProtectiveOrdersHandler reconciles resting TP/SL orders toward a desired set.
func ProtectiveOrdersHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ProtectiveOrdersReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		result, err := serverCtx.DefaultExchange.ReconcileProtectiveOrders(r.Context(), exchange.BatchProtectiveParams{
			AssetName: req.Asset,
			IsBuy:     req.IsBuy,
			TP:        toProtectiveSpecs(req.TP),
			SL:        toProtectiveSpecs(req.SL),
		})
		if err != nil {
			logx.WithContext(r.Context()).Errorf("protective reconcile %s failed: %v", req.Asset, err)
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, types.ProtectiveOrdersResp{
			TP: types.ProtectiveKindResp(result.TP),
			SL: types.ProtectiveKindResp(result.SL),
		})
	}
}

func toProtectiveSpecs(levels []types.ProtectiveLevel) []exchange.ProtectiveSpec {
	specs := make([]exchange.ProtectiveSpec, 0, len(levels))
	for _, level := range levels {
		specs = append(specs, exchange.ProtectiveSpec{
			Price:    level.Price,
			Sz:       level.Sz,
			IsMarket: level.IsMarket,
		})
	}
	return specs
}

// CancelOrderHandler cancels a single resting order.
func CancelOrderHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CancelOrderReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		if err := serverCtx.DefaultExchange.CancelOrder(r.Context(), req.Asset, req.Oid); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.Ok(w)
	}
}

// OpenOrdersHandler lists the account's resting orders.
func OpenOrdersHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := serverCtx.DefaultExchange.GetOpenOrders(r.Context())
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, orders)
	}
}

// OrderStatusHandler looks up an order's lifecycle state by oid.
func OrderStatusHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.OrderStatusReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		status, err := serverCtx.DefaultExchange.GetOrderStatus(r.Context(), req.Oid)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, status)
	}
}
