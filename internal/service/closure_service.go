package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// ClosureService implements the Connect ClosureService. A closed month
// rejects changes to its expenses and payments until reopened.
type ClosureService struct {
	ledger
	logger *slog.Logger
	now    func() time.Time
}

// NewClosureService creates a ClosureService backed by store.
func NewClosureService(store storage.Store, logger *slog.Logger) *ClosureService {
	return &ClosureService{ledger: ledger{store: store}, logger: logger, now: time.Now}
}

func (s *ClosureService) CloseMonth(ctx context.Context, req *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error) {
	ym, err := calculator.NewYearMonth(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}
	category, err := s.resolveCategory(ctx, req.Msg.CategoryID, ym.First())
	if err != nil {
		return nil, toConnectError(err)
	}

	closure := &models.MonthClosure{
		Year:         ym.Year,
		Month:        int(ym.Month),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		ClosedAt:     s.now().UTC().Truncate(time.Second),
		Note:         strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CloseMonth(ctx, closure); err != nil {
		s.logger.Warn("CloseMonth failed", "month", ym.String(), "category_id", category.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Month closed", "month", ym.String(), "category", category.Name)
	return connect.NewResponse(&api.CloseMonthResponse{Closure: toAPIClosure(closure)}), nil
}

func (s *ClosureService) ListClosures(ctx context.Context, req *connect.Request[api.ListClosuresRequest]) (*connect.Response[api.ListClosuresResponse], error) {
	closures, err := s.store.ListClosures(ctx, req.Msg.CategoryID)
	if err != nil {
		s.logger.Error("ListClosures failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Closure, len(closures))
	for i, c := range closures {
		out[i] = toAPIClosure(c)
	}
	return connect.NewResponse(&api.ListClosuresResponse{Closures: out}), nil
}

// ReopenMonth lifts a month lock. Without a category the month's default
// category is reopened; it is never created here.
func (s *ClosureService) ReopenMonth(ctx context.Context, req *connect.Request[api.ReopenMonthRequest]) (*connect.Response[api.ReopenMonthResponse], error) {
	ym, err := calculator.NewYearMonth(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}

	categoryID := req.Msg.CategoryID
	if categoryID == 0 {
		name := models.MonthCategoryName(int(ym.Month))
		category, err := s.findCategory(ctx, name)
		if err != nil {
			return nil, toConnectError(err)
		}
		if category == nil {
			return nil, toConnectError(fmt.Errorf("closure of %s in %q: %w", ym, name, storage.ErrNotFound))
		}
		categoryID = category.ID
	}

	if err := s.store.ReopenMonth(ctx, ym.Year, int(ym.Month), categoryID); err != nil {
		s.logger.Warn("ReopenMonth failed", "month", ym.String(), "category_id", categoryID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Month reopened", "month", ym.String(), "category_id", categoryID)
	return connect.NewResponse(&api.ReopenMonthResponse{}), nil
}
