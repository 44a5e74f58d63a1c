package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	ledger
	logger *slog.Logger
}

// NewExpenseService creates an ExpenseService backed by store.
func NewExpenseService(store storage.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{ledger: ledger{store: store}, logger: logger}
}

// CreateExpense records an outlay and who owes what on it.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	s.logger.Info("CreateExpense request received",
		"description", req.Msg.Description,
		"payer_id", req.Msg.PayerID,
		"divide", req.Msg.Divide,
	)

	expense, err := s.buildExpense(ctx, 0, &req.Msg.ExpenseInput)
	if err != nil {
		s.logger.Warn("CreateExpense rejected", "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense created", "expense_id", expense.ID, "shares", len(expense.Shares))
	out, err := s.present(ctx, expense)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: out}), nil
}

// ListExpenses returns expenses in an optional date range, ordered by date.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	r, err := optionalRange(req.Msg.Start, req.Msg.End)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, r)
	if err != nil {
		s.logger.Error("ListExpenses failed", "error", err)
		return nil, toConnectError(err)
	}
	people, categories, err := s.names(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e, people, categories)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// UpdateExpense rewrites an expense and replaces its shares. Both the month
// it leaves and the month it lands in must be open.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	s.logger.Info("UpdateExpense request received", "expense_id", req.Msg.ID)

	current, err := s.store.GetExpense(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ensureMonthOpen(ctx, current.Date, current.CategoryID); err != nil {
		return nil, toConnectError(err)
	}

	expense, err := s.buildExpense(ctx, current.ID, &req.Msg.ExpenseInput)
	if err != nil {
		s.logger.Warn("UpdateExpense rejected", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		s.logger.Error("UpdateExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense updated", "expense_id", expense.ID)
	out, err := s.present(ctx, expense)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: out}), nil
}

// DeleteExpense removes an expense from an open month.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ensureMonthOpen(ctx, expense.Date, expense.CategoryID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		s.logger.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// buildExpense validates in and computes its shares. id is zero for a new
// expense and is excluded from the duplicate check otherwise.
func (s *ExpenseService) buildExpense(ctx context.Context, id int64, in *api.ExpenseInput) (*models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := calculator.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if in.PayerID == 0 {
		return nil, fmt.Errorf("%w: payer is required", ErrValidation)
	}

	// A month default that does not exist yet is created last, once the
	// request has passed every check.
	category, err := s.lookupCategory(ctx, in.CategoryID, date)
	if err != nil {
		return nil, err
	}
	if category != nil {
		if err := s.ensureMonthOpen(ctx, date, category.ID); err != nil {
			return nil, err
		}
	}
	if err := s.requirePeople(ctx, in.PayerID); err != nil {
		return nil, err
	}

	var allocations []calculator.Allocation
	if in.Divide {
		allocations, err = s.divide(ctx, amount, in.PayerID, in.ParticipantIDs)
	} else {
		allocations, err = s.debtors(ctx, amount, in.PayerID, in.Debtors)
	}
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          id,
		Description: description,
		Date:        date,
		Amount:      amount,
		PayerID:     in.PayerID,
		Divided:     in.Divide,
		Shares:      make([]models.ExpenseShare, len(allocations)),
	}
	for i, a := range allocations {
		expense.Shares[i] = models.ExpenseShare{ExpenseID: id, PersonID: a.PersonID, Amount: a.Amount}
	}

	// Without its category no stored expense can match.
	if category != nil {
		expense.CategoryID = category.ID
		duplicate, err := s.store.ExpenseExists(ctx, expense)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, fmt.Errorf("expense %q on %s: %w", description, calculator.FormatDate(date), storage.ErrDuplicate)
		}
	}

	if category, err = s.ensureCategory(ctx, category, date); err != nil {
		return nil, err
	}
	expense.CategoryID = category.ID
	return expense, nil
}

// divide splits amount equally among the participants and the payer.
func (s *ExpenseService) divide(ctx context.Context, amount money.Cents, payerID int64, participantIDs []int64) ([]calculator.Allocation, error) {
	ids := slices.Clone(participantIDs)
	if !slices.Contains(ids, payerID) {
		ids = append(ids, payerID)
	}
	allocations, err := calculator.SplitEqual(amount, ids)
	if err != nil {
		return nil, err
	}
	if err := s.requirePeople(ctx, ids...); err != nil {
		return nil, err
	}
	return allocations, nil
}

// debtors validates an explicit loan-style split.
func (s *ExpenseService) debtors(ctx context.Context, amount money.Cents, payerID int64, shares []*api.Share) ([]calculator.Allocation, error) {
	allocations := make([]calculator.Allocation, 0, len(shares))
	for _, share := range shares {
		if share == nil {
			return nil, fmt.Errorf("%w: debtor entry is null", calculator.ErrInvalidSplit)
		}
		cents, err := money.FromDecimal(share.Amount)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, calculator.Allocation{PersonID: share.PersonID, Amount: cents})
	}
	if err := calculator.ValidateManualSplit(amount, payerID, allocations); err != nil {
		return nil, err
	}

	ids := make([]int64, len(allocations))
	for i, a := range allocations {
		ids[i] = a.PersonID
	}
	if err := s.requirePeople(ctx, ids...); err != nil {
		return nil, err
	}
	slices.SortFunc(allocations, func(a, b calculator.Allocation) int {
		return cmp.Compare(a.PersonID, b.PersonID)
	})
	return allocations, nil
}

func (s *ExpenseService) present(ctx context.Context, expense *models.Expense) (*api.Expense, error) {
	people, categories, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	return toAPIExpense(expense, people, categories), nil
}
