package calculator

import (
	"fmt"
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// Person is a ledger participant. Identity is by ID; Name is only used for output.
type Person struct {
	ID   int64
	Name string
}

// Expense is an outlay by one payer.
type Expense struct {
	ID         int64
	Date       time.Time
	Amount     money.Cents
	PayerID    int64
	CategoryID int64 // 0 = uncategorized
}

// Share is the portion of an expense owed by one person.
type Share struct {
	ExpenseID int64
	PersonID  int64
	Amount    money.Cents
}

// Payment is a direct settlement from payer to recipient.
type Payment struct {
	ID          int64
	Date        time.Time
	Amount      money.Cents
	PayerID     int64
	RecipientID int64
	CategoryID  int64
}

// Snapshot is the consistent set of records a computation runs over.
// People must be ordered by ID; that order breaks ties between equal balances.
type Snapshot struct {
	People   []Person
	Expenses []Expense
	Shares   []Share
	Payments []Payment
}

// Transfer is a suggested or outstanding amount owed by From to To.
type Transfer struct {
	FromID   int64
	FromName string
	ToID     int64
	ToName   string
	Amount   money.Cents
}

// directory indexes people and expenses of a snapshot for a single call.
type directory struct {
	people   map[int64]Person
	expenses map[int64]Expense
}

func newDirectory(snap Snapshot) (*directory, error) {
	d := &directory{
		people:   make(map[int64]Person, len(snap.People)),
		expenses: make(map[int64]Expense, len(snap.Expenses)),
	}
	for _, p := range snap.People {
		d.people[p.ID] = p
	}
	for _, e := range snap.Expenses {
		if _, err := d.person(e.PayerID); err != nil {
			return nil, fmt.Errorf("expense %d payer: %w", e.ID, err)
		}
		d.expenses[e.ID] = e
	}
	return d, nil
}

func (d *directory) person(id int64) (Person, error) {
	p, ok := d.people[id]
	if !ok {
		return Person{}, fmt.Errorf("%w: id %d", ErrUnknownPerson, id)
	}
	return p, nil
}

func (d *directory) expense(id int64) (Expense, error) {
	e, ok := d.expenses[id]
	if !ok {
		return Expense{}, fmt.Errorf("%w: id %d", ErrUnknownExpense, id)
	}
	return e, nil
}

func (d *directory) transfer(from, to int64, amount money.Cents) Transfer {
	return Transfer{
		FromID:   from,
		FromName: d.people[from].Name,
		ToID:     to,
		ToName:   d.people[to].Name,
		Amount:   amount,
	}
}
