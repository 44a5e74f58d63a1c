// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a row violates a uniqueness rule.
	ErrDuplicate = errors.New("already exists")

	// ErrInUse is returned when deleting a row that other rows still reference.
	ErrInUse = errors.New("still referenced")
)

// DateRange bounds a listing by calendar day, inclusive on both ends.
// A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// PersonStore persists people.
type PersonStore interface {
	// CreatePerson assigns person.ID. Names are unique ignoring case.
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, id int64) (*models.Person, error)
	// ListPeople returns everyone ordered by id.
	ListPeople(ctx context.Context) ([]*models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error
	// DeletePerson fails with ErrInUse while any expense, share or payment
	// references the person.
	DeletePerson(ctx context.Context, id int64) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	// GetOrCreateCategory returns the category with the given name, creating
	// it when missing. Lookup ignores case.
	GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	// ListCategories returns categories sorted by name ignoring case.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	// DeleteCategory fails with ErrInUse while an expense, payment or closure
	// uses the category.
	DeleteCategory(ctx context.Context, id int64) error
}

// ExpenseStore persists expenses together with their shares.
type ExpenseStore interface {
	// CreateExpense writes the expense and its shares in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	// ListExpenses returns expenses in the range ordered by date then id,
	// each with its shares.
	ListExpenses(ctx context.Context, r DateRange) ([]*models.Expense, error)
	// UpdateExpense rewrites the expense and replaces all of its shares.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	// ExpenseExists reports whether another expense has the same
	// description, date, amount, payer and category. expense.ID is excluded
	// from the comparison.
	ExpenseExists(ctx context.Context, expense *models.Expense) (bool, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	// ListPayments returns payments in the range ordered by date then id.
	ListPayments(ctx context.Context, r DateRange) ([]*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id int64) error
}

// ClosureStore persists month locks.
type ClosureStore interface {
	// CloseMonth fails with ErrDuplicate when the month is already closed.
	CloseMonth(ctx context.Context, closure *models.MonthClosure) error
	// ReopenMonth fails with ErrNotFound when the month is not closed.
	ReopenMonth(ctx context.Context, year, month int, categoryID int64) error
	IsMonthClosed(ctx context.Context, year, month int, categoryID int64) (bool, error)
	// ListClosures returns closures sorted by category name, year and month.
	// A zero categoryID lists every category.
	ListClosures(ctx context.Context, categoryID int64) ([]*models.MonthClosure, error)
}

// Ledger is everything balances are computed from, read at one point in
// time.
type Ledger struct {
	People   []*models.Person
	Expenses []*models.Expense
	Payments []*models.Payment
}

// LedgerStore reads consistent snapshots for the balance engine.
type LedgerStore interface {
	// LoadLedger returns every person plus the expenses, with their shares,
	// and payments in r. All rows come from a single read transaction.
	LoadLedger(ctx context.Context, r DateRange) (*Ledger, error)
}

// UserStore persists accounts. Lookups return (nil, nil) when the user does
// not exist.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store aggregates every persistence concern of the ledger.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	PersonStore
	CategoryStore
	ExpenseStore
	PaymentStore
	ClosureStore
	LedgerStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
