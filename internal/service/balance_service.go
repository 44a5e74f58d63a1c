package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// BalanceService implements the Connect BalanceService. Every call reads a
// fresh snapshot and recomputes; nothing is cached between calls.
type BalanceService struct {
	ledger
	logger *slog.Logger
}

// NewBalanceService creates a BalanceService backed by store.
func NewBalanceService(store storage.Store, logger *slog.Logger) *BalanceService {
	return &BalanceService{ledger: ledger{store: store}, logger: logger}
}

func (s *BalanceService) GetMonthBalances(ctx context.Context, req *connect.Request[api.MonthQuery]) (*connect.Response[api.BalancesResponse], error) {
	period, err := s.monthPeriod(ctx, req.Msg.Year, req.Msg.Month, req.Msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.respondBalances(ctx, period)
}

func (s *BalanceService) GetPeriodBalances(ctx context.Context, req *connect.Request[api.PeriodQuery]) (*connect.Response[api.BalancesResponse], error) {
	period, err := s.period(ctx, req.Msg.Start, req.Msg.End, req.Msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.respondBalances(ctx, period)
}

func (s *BalanceService) GetMonthTransfers(ctx context.Context, req *connect.Request[api.MonthQuery]) (*connect.Response[api.TransfersResponse], error) {
	period, err := s.monthPeriod(ctx, req.Msg.Year, req.Msg.Month, req.Msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.respondTransfers(ctx, period)
}

func (s *BalanceService) GetPeriodTransfers(ctx context.Context, req *connect.Request[api.PeriodQuery]) (*connect.Response[api.TransfersResponse], error) {
	period, err := s.period(ctx, req.Msg.Start, req.Msg.End, req.Msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.respondTransfers(ctx, period)
}

// GetCumulativeDebt returns who owes whom at the end of the requested month
// after netting every earlier share and payment.
func (s *BalanceService) GetCumulativeDebt(ctx context.Context, req *connect.Request[api.CumulativeDebtRequest]) (*connect.Response[api.CumulativeDebtResponse], error) {
	ym, err := calculator.NewYearMonth(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}
	filter, err := s.categoryFilter(ctx, req.Msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}

	debts, err := s.cumulativeDebt(ctx, ym, filter)
	if err != nil {
		s.logger.Error("GetCumulativeDebt failed", "month", ym.String(), "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Debug("Cumulative debt computed", "month", ym.String(), "edges", len(debts))
	return connect.NewResponse(&api.CumulativeDebtResponse{Debts: toAPITransfers(debts)}), nil
}

func (s *BalanceService) respondBalances(ctx context.Context, period calculator.Period) (*connect.Response[api.BalancesResponse], error) {
	balances, err := s.balances(ctx, period)
	if err != nil {
		s.logger.Error("Balance computation failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.BalancesResponse{
		Start:    calculator.FormatDate(period.Start),
		End:      calculator.FormatDate(period.End),
		Balances: toAPIBalances(balances),
	}), nil
}

func (s *BalanceService) respondTransfers(ctx context.Context, period calculator.Period) (*connect.Response[api.TransfersResponse], error) {
	balances, err := s.balances(ctx, period)
	if err != nil {
		s.logger.Error("Balance computation failed", "error", err)
		return nil, toConnectError(err)
	}
	transfers := calculator.SuggestTransfers(balances)

	s.logger.Debug("Transfers suggested",
		"start", calculator.FormatDate(period.Start),
		"end", calculator.FormatDate(period.End),
		"transfers", len(transfers),
	)
	return connect.NewResponse(&api.TransfersResponse{
		Start:     calculator.FormatDate(period.Start),
		End:       calculator.FormatDate(period.End),
		Transfers: toAPITransfers(transfers),
	}), nil
}
