package service

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// loadSnapshot reads people, expenses with their shares and payments in r
// as of one instant and converts them for the engine.
func (l *ledger) loadSnapshot(ctx context.Context, r storage.DateRange) (calculator.Snapshot, error) {
	data, err := l.store.LoadLedger(ctx, r)
	if err != nil {
		return calculator.Snapshot{}, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	people, expenses, payments := data.People, data.Expenses, data.Payments

	snap := calculator.Snapshot{
		People:   make([]calculator.Person, len(people)),
		Expenses: make([]calculator.Expense, len(expenses)),
		Payments: make([]calculator.Payment, len(payments)),
	}
	for i, p := range people {
		snap.People[i] = calculator.Person{ID: p.ID, Name: p.Name}
	}
	for i, e := range expenses {
		snap.Expenses[i] = calculator.Expense{
			ID:         e.ID,
			Date:       e.Date,
			Amount:     e.Amount,
			PayerID:    e.PayerID,
			CategoryID: e.CategoryID,
		}
		for _, s := range e.Shares {
			snap.Shares = append(snap.Shares, calculator.Share{ExpenseID: e.ID, PersonID: s.PersonID, Amount: s.Amount})
		}
	}
	for i, p := range payments {
		snap.Payments[i] = calculator.Payment{
			ID:          p.ID,
			Date:        p.Date,
			Amount:      p.Amount,
			PayerID:     p.PayerID,
			RecipientID: p.RecipientID,
			CategoryID:  p.CategoryID,
		}
	}
	return snap, nil
}

// monthFilter selects the records of a month view. An explicit category
// must exist. Without one, the month's default category is used together
// with uncategorized records; if that category was never created only
// uncategorized records match.
func (l *ledger) monthFilter(ctx context.Context, ym calculator.YearMonth, categoryID int64) (calculator.CategoryFilter, error) {
	if categoryID != 0 {
		if _, err := l.store.GetCategory(ctx, categoryID); err != nil {
			return calculator.CategoryFilter{}, err
		}
		return calculator.CategoryFilter{CategoryID: categoryID}, nil
	}

	category, err := l.findCategory(ctx, models.MonthCategoryName(int(ym.Month)))
	if err != nil {
		return calculator.CategoryFilter{}, err
	}
	if category == nil {
		return calculator.UncategorizedOnly, nil
	}
	return calculator.CategoryFilter{CategoryID: category.ID, IncludeUncategorized: true}, nil
}

// categoryFilter selects one existing category, or everything for zero.
func (l *ledger) categoryFilter(ctx context.Context, categoryID int64) (calculator.CategoryFilter, error) {
	if categoryID == 0 {
		return calculator.CategoryFilter{}, nil
	}
	if _, err := l.store.GetCategory(ctx, categoryID); err != nil {
		return calculator.CategoryFilter{}, err
	}
	return calculator.CategoryFilter{CategoryID: categoryID}, nil
}

// monthPeriod validates year and month and builds the month view period.
func (l *ledger) monthPeriod(ctx context.Context, year, month int, categoryID int64) (calculator.Period, error) {
	ym, err := calculator.NewYearMonth(year, month)
	if err != nil {
		return calculator.Period{}, err
	}
	filter, err := l.monthFilter(ctx, ym, categoryID)
	if err != nil {
		return calculator.Period{}, err
	}
	return calculator.MonthPeriod(ym, filter), nil
}

// period parses an inclusive date range for a period view.
func (l *ledger) period(ctx context.Context, start, end string, categoryID int64) (calculator.Period, error) {
	from, err := calculator.ParseDate(start)
	if err != nil {
		return calculator.Period{}, err
	}
	to, err := calculator.ParseDate(end)
	if err != nil {
		return calculator.Period{}, err
	}
	filter, err := l.categoryFilter(ctx, categoryID)
	if err != nil {
		return calculator.Period{}, err
	}
	return calculator.NewPeriod(from, to, filter)
}

// balances computes the balances of period from a snapshot bounded by it.
func (l *ledger) balances(ctx context.Context, period calculator.Period) ([]calculator.Balance, error) {
	snap, err := l.loadSnapshot(ctx, storage.DateRange{Start: period.Start, End: period.End})
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(period, snap)
}

// cumulativeDebt computes outstanding debts at the end of ym.
func (l *ledger) cumulativeDebt(ctx context.Context, ym calculator.YearMonth, filter calculator.CategoryFilter) ([]calculator.Transfer, error) {
	snap, err := l.loadSnapshot(ctx, storage.DateRange{End: ym.Last()})
	if err != nil {
		return nil, err
	}
	return calculator.CumulativeDebt(ym, filter, snap)
}
