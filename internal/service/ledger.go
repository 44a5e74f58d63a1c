package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

// ledger holds the lookups shared by the services that change money rows.
type ledger struct {
	store storage.Store
}

// positiveAmount converts a request amount to cents and requires it to be
// greater than zero.
func positiveAmount(d decimal.Decimal) (money.Cents, error) {
	amount, err := money.FromDecimal(d)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive, got %s", ErrValidation, d.String())
	}
	return amount, nil
}

// optionalRange parses an optional inclusive date range.
func optionalRange(start, end string) (storage.DateRange, error) {
	var r storage.DateRange
	var err error
	if strings.TrimSpace(start) != "" {
		if r.Start, err = calculator.ParseDate(start); err != nil {
			return r, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if r.End, err = calculator.ParseDate(end); err != nil {
			return r, err
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() {
		if _, err := calculator.NewPeriod(r.Start, r.End, calculator.CategoryFilter{}); err != nil {
			return r, err
		}
	}
	return r, nil
}

// requirePeople checks that every id refers to an existing person.
func (l *ledger) requirePeople(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := l.store.GetPerson(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: %d", calculator.ErrUnknownPerson, id)
			}
			return err
		}
	}
	return nil
}

// resolveCategory returns the explicit category, or the default category of
// the month containing date when categoryID is zero, creating it if needed.
func (l *ledger) resolveCategory(ctx context.Context, categoryID int64, date time.Time) (*models.Category, error) {
	category, err := l.lookupCategory(ctx, categoryID, date)
	if err != nil {
		return nil, err
	}
	return l.ensureCategory(ctx, category, date)
}

// lookupCategory is resolveCategory without the create. A month default
// that does not exist yet comes back as nil.
func (l *ledger) lookupCategory(ctx context.Context, categoryID int64, date time.Time) (*models.Category, error) {
	if categoryID != 0 {
		return l.store.GetCategory(ctx, categoryID)
	}
	return l.findCategory(ctx, models.MonthCategoryName(int(date.Month())))
}

// ensureCategory creates the month default for date when category is nil.
// Writers call it only after every other check passed so that a rejected
// request leaves no category behind.
func (l *ledger) ensureCategory(ctx context.Context, category *models.Category, date time.Time) (*models.Category, error) {
	if category != nil {
		return category, nil
	}
	return l.store.GetOrCreateCategory(ctx, models.MonthCategoryName(int(date.Month())))
}

// findCategory looks a category up by name without creating it.
func (l *ledger) findCategory(ctx context.Context, name string) (*models.Category, error) {
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

// ensureMonthOpen fails with ErrMonthClosed when the month of date is
// closed for categoryID.
func (l *ledger) ensureMonthOpen(ctx context.Context, date time.Time, categoryID int64) error {
	closed, err := l.store.IsMonthClosed(ctx, date.Year(), int(date.Month()), categoryID)
	if err != nil {
		return err
	}
	if closed {
		return fmt.Errorf("%w: %s", ErrMonthClosed, calculator.YearMonthOf(date))
	}
	return nil
}

// names returns person and category names by id.
func (l *ledger) names(ctx context.Context) (people, categories map[int64]string, err error) {
	var (
		ps []*models.Person
		cs []*models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ps, err = l.store.ListPeople(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cs, err = l.store.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	people = make(map[int64]string, len(ps))
	for _, p := range ps {
		people[p.ID] = p.Name
	}
	categories = make(map[int64]string, len(cs))
	for _, c := range cs {
		categories[c.ID] = c.Name
	}
	return people, categories, nil
}
