package calculator

import (
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/money"
)

// Allocation is the amount one person owes on an expense.
type Allocation struct {
	PersonID int64
	Amount   money.Cents
}

// SplitEqual divides total among participants in exact cents.
//
// Participants are ordered by ID; the first total%n of them owe one extra
// cent, so the shares always add up to total and differ by at most one cent.
func SplitEqual(total money.Cents, participantIDs []int64) ([]Allocation, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidSplit)
	}
	if len(participantIDs) < 2 {
		return nil, fmt.Errorf("%w: at least 2 participants required, got %d", ErrInvalidSplit, len(participantIDs))
	}

	ids := slices.Clone(participantIDs)
	slices.Sort(ids)
	for i, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: participant id %d is not a valid reference", ErrInvalidSplit, id)
		}
		if i > 0 && ids[i-1] == id {
			return nil, fmt.Errorf("%w: duplicate participant %d", ErrInvalidSplit, id)
		}
	}

	n := money.Cents(len(ids))
	base, remainder := total/n, total%n

	shares := make([]Allocation, len(ids))
	for i, id := range ids {
		amount := base
		if money.Cents(i) < remainder {
			amount++
		}
		shares[i] = Allocation{PersonID: id, Amount: amount}
	}
	return shares, nil
}

// ValidateManualSplit checks debtor amounts supplied for a loan-style
// expense: every debtor appears once with a positive amount, the payer is not
// a debtor, and the amounts add up to total exactly.
func ValidateManualSplit(total money.Cents, payerID int64, debtors []Allocation) error {
	if len(debtors) == 0 {
		return fmt.Errorf("%w: at least one debtor required", ErrInvalidSplit)
	}

	seen := make(map[int64]bool, len(debtors))
	var sum money.Cents
	for _, d := range debtors {
		if d.PersonID <= 0 {
			return fmt.Errorf("%w: debtor id %d is not a valid reference", ErrInvalidSplit, d.PersonID)
		}
		if d.Amount <= 0 {
			return fmt.Errorf("%w: debtor %d amount must be positive", ErrInvalidSplit, d.PersonID)
		}
		if d.PersonID == payerID {
			return fmt.Errorf("%w: payer %d cannot be a debtor", ErrInvalidSplit, payerID)
		}
		if seen[d.PersonID] {
			return fmt.Errorf("%w: duplicate debtor %d", ErrInvalidSplit, d.PersonID)
		}
		seen[d.PersonID] = true
		sum += d.Amount
	}

	if sum != total {
		return fmt.Errorf("%w: debtors add up to %s, expense is %s", ErrInvalidSplit, sum, total)
	}
	return nil
}
