package calculator

import (
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/money"
)

// Balance is one person's position within a period.
type Balance struct {
	PersonID int64
	Name     string

	Paid money.Cents // sum of expenses this person paid
	Owed money.Cents // sum of shares this person owes
	Net  money.Cents // Paid - Owed

	// Exactly one of Receivable and Payable is non-zero when Net != 0.
	Receivable money.Cents
	Payable    money.Cents
}

// Active reports whether the person had any activity in the period.
func (b Balance) Active() bool {
	return b.Paid != 0 || b.Owed != 0
}

// ComputeBalances aggregates expenses and shares inside period into one
// Balance per person in snap.People, including people without activity.
// Payments are not part of a balance; they only settle the cumulative debt
// graph (see CumulativeDebt).
//
// The result is sorted by Receivable descending. Ties keep the order of
// snap.People, which makes SuggestTransfers deterministic.
func ComputeBalances(period Period, snap Snapshot) ([]Balance, error) {
	dir, err := newDirectory(snap)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(snap.People))
	balances := make([]Balance, len(snap.People))
	for i, p := range snap.People {
		index[p.ID] = i
		balances[i] = Balance{PersonID: p.ID, Name: p.Name}
	}

	selected := func(e Expense) bool {
		return period.Contains(e.Date) && period.Category.Matches(e.CategoryID)
	}

	for _, e := range snap.Expenses {
		if !selected(e) {
			continue
		}
		balances[index[e.PayerID]].Paid += e.Amount
	}

	for _, s := range snap.Shares {
		e, err := dir.expense(s.ExpenseID)
		if err != nil {
			return nil, fmt.Errorf("share of person %d: %w", s.PersonID, err)
		}
		if _, err := dir.person(s.PersonID); err != nil {
			return nil, fmt.Errorf("share of expense %d: %w", s.ExpenseID, err)
		}
		if !selected(e) {
			continue
		}
		balances[index[s.PersonID]].Owed += s.Amount
	}

	for i := range balances {
		b := &balances[i]
		b.Net = b.Paid - b.Owed
		switch {
		case b.Net > 0:
			b.Receivable = b.Net
		case b.Net < 0:
			b.Payable = -b.Net
		}
	}

	slices.SortStableFunc(balances, func(a, b Balance) int {
		switch {
		case a.Receivable > b.Receivable:
			return -1
		case a.Receivable < b.Receivable:
			return 1
		}
		return 0
	})

	return balances, nil
}

// SuggestTransfers settles balances with a greedy two-pointer walk.
//
// Debtors and creditors keep the order of the input. Each step moves
// min(payable, receivable) from the current debtor to the current creditor
// and advances whichever side reached zero, so at most
// len(debtors)+len(creditors)-1 transfers are emitted. The result settles
// every balance but is not guaranteed to use the fewest transfers.
func SuggestTransfers(balances []Balance) []Transfer {
	type position struct {
		id     int64
		name   string
		amount money.Cents
	}

	var debtors, creditors []position
	for _, b := range balances {
		if b.Payable > 0 {
			debtors = append(debtors, position{b.PersonID, b.Name, b.Payable})
		}
		if b.Receivable > 0 {
			creditors = append(creditors, position{b.PersonID, b.Name, b.Receivable})
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := money.Min(debtor.amount, creditor.amount)
		transfers = append(transfers, Transfer{
			FromID:   debtor.id,
			FromName: debtor.name,
			ToID:     creditor.id,
			ToName:   creditor.name,
			Amount:   amount,
		})

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount == 0 {
			i++
		}
		if creditor.amount == 0 {
			j++
		}
	}

	return transfers
}
