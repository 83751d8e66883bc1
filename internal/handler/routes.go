package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"hlgw-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/orders/instant",
				Handler: InstantOrderHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/orders/protective",
				Handler: ProtectiveOrdersHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/orders/cancel",
				Handler: CancelOrderHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/orders/open",
				Handler: OpenOrdersHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/orders/:oid",
				Handler: OrderStatusHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/account/state",
				Handler: AccountStateHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/account/fills",
				Handler: UserFillsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/account/leverage",
				Handler: UpdateLeverageHandler(serverCtx),
			},
		},
	)
}
