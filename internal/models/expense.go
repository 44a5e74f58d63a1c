package models

import (
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// Expense is a purchase paid by one person and owed by others.
type Expense struct {
	ID          int64
	Description string
	Date        time.Time
	Amount      money.Cents
	PayerID     int64

	// CategoryID is 0 for uncategorized expenses.
	CategoryID int64

	// Divided is true when the amount was split equally among the
	// participants (payer included). False means a manual split where the
	// payer owes nothing.
	Divided bool

	// Shares always add up to Amount.
	Shares []ExpenseShare
}

// ExpenseShare is the part of an expense owed by one person.
type ExpenseShare struct {
	ExpenseID int64
	PersonID  int64
	Amount    money.Cents
}

// ParticipantIDs returns the ids of everyone holding a share.
func (e *Expense) ParticipantIDs() []int64 {
	ids := make([]int64, len(e.Shares))
	for i, s := range e.Shares {
		ids[i] = s.PersonID
	}
	return ids
}
