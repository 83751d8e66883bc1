package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"hlgw-api/internal/svc"
	"hlgw-api/internal/types"
)

// AccountStateHandler returns the perp clearinghouse state.
func AccountStateHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := serverCtx.DefaultExchange.GetAccountState(r.Context())
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, state)
	}
}

// UserFillsHandler returns recent fills for the account.
func UserFillsHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UserFillsReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		fills, err := serverCtx.DefaultExchange.GetUserFills(r.Context(), req.AggregateByTime)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, fills)
	}
}

// UpdateLeverageHandler adjusts leverage for an asset.
func UpdateLeverageHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateLeverageReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		if err := serverCtx.DefaultExchange.UpdateLeverage(r.Context(), req.Asset, req.IsCross, req.Leverage); err != nil {
			logx.WithContext(r.Context()).Errorf("update leverage %s failed: %v", req.Asset, err)
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.Ok(w)
	}
}
