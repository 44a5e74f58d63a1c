package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// BalanceServiceName is the fully-qualified name of the BalanceService.
	BalanceServiceName = "ledger.v1.BalanceService"
)

const (
	BalanceServiceGetMonthBalancesProcedure   = "/" + BalanceServiceName + "/GetMonthBalances"
	BalanceServiceGetPeriodBalancesProcedure  = "/" + BalanceServiceName + "/GetPeriodBalances"
	BalanceServiceGetMonthTransfersProcedure  = "/" + BalanceServiceName + "/GetMonthTransfers"
	BalanceServiceGetPeriodTransfersProcedure = "/" + BalanceServiceName + "/GetPeriodTransfers"
	BalanceServiceGetCumulativeDebtProcedure  = "/" + BalanceServiceName + "/GetCumulativeDebt"
)

// BalanceServiceHandler is implemented by the server side of the BalanceService.
// Computes balances, suggested transfers and cumulative debt.
type BalanceServiceHandler interface {
	GetMonthBalances(context.Context, *connect.Request[api.MonthQuery]) (*connect.Response[api.BalancesResponse], error)
	GetPeriodBalances(context.Context, *connect.Request[api.PeriodQuery]) (*connect.Response[api.BalancesResponse], error)
	GetMonthTransfers(context.Context, *connect.Request[api.MonthQuery]) (*connect.Response[api.TransfersResponse], error)
	GetPeriodTransfers(context.Context, *connect.Request[api.PeriodQuery]) (*connect.Response[api.TransfersResponse], error)
	GetCumulativeDebt(context.Context, *connect.Request[api.CumulativeDebtRequest]) (*connect.Response[api.CumulativeDebtResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler for the BalanceService. It returns the
// path to mount the handler on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + BalanceServiceName + "/", serviceMux{
		BalanceServiceGetMonthBalancesProcedure:   unaryHandler(BalanceServiceGetMonthBalancesProcedure, svc.GetMonthBalances, opts),
		BalanceServiceGetPeriodBalancesProcedure:  unaryHandler(BalanceServiceGetPeriodBalancesProcedure, svc.GetPeriodBalances, opts),
		BalanceServiceGetMonthTransfersProcedure:  unaryHandler(BalanceServiceGetMonthTransfersProcedure, svc.GetMonthTransfers, opts),
		BalanceServiceGetPeriodTransfersProcedure: unaryHandler(BalanceServiceGetPeriodTransfersProcedure, svc.GetPeriodTransfers, opts),
		BalanceServiceGetCumulativeDebtProcedure:  unaryHandler(BalanceServiceGetCumulativeDebtProcedure, svc.GetCumulativeDebt, opts),
	}
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	GetMonthBalances(context.Context, *connect.Request[api.MonthQuery]) (*connect.Response[api.BalancesResponse], error)
	GetPeriodBalances(context.Context, *connect.Request[api.PeriodQuery]) (*connect.Response[api.BalancesResponse], error)
	GetMonthTransfers(context.Context, *connect.Request[api.MonthQuery]) (*connect.Response[api.TransfersResponse], error)
	GetPeriodTransfers(context.Context, *connect.Request[api.PeriodQuery]) (*connect.Response[api.TransfersResponse], error)
	GetCumulativeDebt(context.Context, *connect.Request[api.CumulativeDebtRequest]) (*connect.Response[api.CumulativeDebtResponse], error)
}

type balanceServiceClient struct {
	getMonthBalances   *connect.Client[api.MonthQuery, api.BalancesResponse]
	getPeriodBalances  *connect.Client[api.PeriodQuery, api.BalancesResponse]
	getMonthTransfers  *connect.Client[api.MonthQuery, api.TransfersResponse]
	getPeriodTransfers *connect.Client[api.PeriodQuery, api.TransfersResponse]
	getCumulativeDebt  *connect.Client[api.CumulativeDebtRequest, api.CumulativeDebtResponse]
}

// NewBalanceServiceClient constructs a client for the BalanceService served at baseURL.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	return &balanceServiceClient{
		getMonthBalances:   unaryClient[api.MonthQuery, api.BalancesResponse](httpClient, baseURL, BalanceServiceGetMonthBalancesProcedure, opts),
		getPeriodBalances:  unaryClient[api.PeriodQuery, api.BalancesResponse](httpClient, baseURL, BalanceServiceGetPeriodBalancesProcedure, opts),
		getMonthTransfers:  unaryClient[api.MonthQuery, api.TransfersResponse](httpClient, baseURL, BalanceServiceGetMonthTransfersProcedure, opts),
		getPeriodTransfers: unaryClient[api.PeriodQuery, api.TransfersResponse](httpClient, baseURL, BalanceServiceGetPeriodTransfersProcedure, opts),
		getCumulativeDebt:  unaryClient[api.CumulativeDebtRequest, api.CumulativeDebtResponse](httpClient, baseURL, BalanceServiceGetCumulativeDebtProcedure, opts),
	}
}

func (c *balanceServiceClient) GetMonthBalances(ctx context.Context, req *connect.Request[api.MonthQuery]) (*connect.Response[api.BalancesResponse], error) {
	return c.getMonthBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetPeriodBalances(ctx context.Context, req *connect.Request[api.PeriodQuery]) (*connect.Response[api.BalancesResponse], error) {
	return c.getPeriodBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetMonthTransfers(ctx context.Context, req *connect.Request[api.MonthQuery]) (*connect.Response[api.TransfersResponse], error) {
	return c.getMonthTransfers.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetPeriodTransfers(ctx context.Context, req *connect.Request[api.PeriodQuery]) (*connect.Response[api.TransfersResponse], error) {
	return c.getPeriodTransfers.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetCumulativeDebt(ctx context.Context, req *connect.Request[api.CumulativeDebtRequest]) (*connect.Response[api.CumulativeDebtResponse], error) {
	return c.getCumulativeDebt.CallUnary(ctx, req)
}
