package calculator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/money"
)

// debtGraph maps debtor -> creditor -> outstanding amount. It never holds
// both a->b and b->a with positive amounts.
type debtGraph map[int64]map[int64]money.Cents

func (g debtGraph) get(debtor, creditor int64) money.Cents {
	return g[debtor][creditor]
}

func (g debtGraph) set(debtor, creditor int64, amount money.Cents) {
	if amount == 0 {
		delete(g[debtor], creditor)
		if len(g[debtor]) == 0 {
			delete(g, debtor)
		}
		return
	}
	if g[debtor] == nil {
		g[debtor] = make(map[int64]money.Cents)
	}
	g[debtor][creditor] = amount
}

// accrue adds amount to debtor->creditor, first cancelling any debt in the
// opposite direction.
func (g debtGraph) accrue(debtor, creditor int64, amount money.Cents) {
	if amount <= 0 || debtor == creditor {
		return
	}
	if reverse := g.get(creditor, debtor); reverse > 0 {
		offset := money.Min(reverse, amount)
		g.set(creditor, debtor, reverse-offset)
		amount -= offset
	}
	if amount > 0 {
		g.set(debtor, creditor, g.get(debtor, creditor)+amount)
	}
}

// settle applies a payment against payer->recipient. Paying more than the
// current debt clears it and the excess becomes recipient->payer debt.
func (g debtGraph) settle(payer, recipient int64, amount money.Cents) {
	if amount <= 0 || payer == recipient {
		return
	}
	current := g.get(payer, recipient)
	if current >= amount {
		g.set(payer, recipient, current-amount)
		return
	}
	g.set(payer, recipient, 0)
	g.accrue(recipient, payer, amount-current)
}

// CumulativeDebt returns who owes whom as of the end of cutoff, after netting
// every share and payment dated on or before that day and matching filter.
//
// Shares accrue ower->payer debt (self-owed shares are skipped). Payments are
// then applied to the payer->recipient edge with overpayment inversion. Edges
// are emitted by amount descending, then by debtor and creditor id.
func CumulativeDebt(cutoff YearMonth, filter CategoryFilter, snap Snapshot) ([]Transfer, error) {
	dir, err := newDirectory(snap)
	if err != nil {
		return nil, err
	}
	last := cutoff.Last()
	graph := make(debtGraph)

	for _, s := range snap.Shares {
		e, err := dir.expense(s.ExpenseID)
		if err != nil {
			return nil, fmt.Errorf("share of person %d: %w", s.PersonID, err)
		}
		if _, err := dir.person(s.PersonID); err != nil {
			return nil, fmt.Errorf("share of expense %d: %w", s.ExpenseID, err)
		}
		if Date(e.Date).After(last) || !filter.Matches(e.CategoryID) {
			continue
		}
		graph.accrue(s.PersonID, e.PayerID, s.Amount)
	}

	for _, p := range snap.Payments {
		if _, err := dir.person(p.PayerID); err != nil {
			return nil, fmt.Errorf("payment %d payer: %w", p.ID, err)
		}
		if _, err := dir.person(p.RecipientID); err != nil {
			return nil, fmt.Errorf("payment %d recipient: %w", p.ID, err)
		}
		if Date(p.Date).After(last) || !filter.Matches(p.CategoryID) {
			continue
		}
		graph.settle(p.PayerID, p.RecipientID, p.Amount)
	}

	var transfers []Transfer
	for debtor, creditors := range graph {
		for creditor, amount := range creditors {
			if amount > 0 {
				transfers = append(transfers, dir.transfer(debtor, creditor, amount))
			}
		}
	}

	slices.SortFunc(transfers, func(a, b Transfer) int {
		return cmp.Or(
			cmp.Compare(b.Amount, a.Amount),
			cmp.Compare(a.FromID, b.FromID),
			cmp.Compare(a.ToID, b.ToID),
		)
	})
	return transfers, nil
}
