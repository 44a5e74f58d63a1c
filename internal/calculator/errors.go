package calculator

import "errors"

var (
	// ErrInvalidSplit is returned when participants or debtor amounts cannot
	// produce shares that add up to the expense amount.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrInvalidPeriod is returned when a date range ends before it starts or a
	// year/month is out of range.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrUnknownPerson is returned when a record references a person that is
	// not part of the snapshot.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrUnknownExpense is returned when a share references an expense that is
	// not part of the snapshot.
	ErrUnknownExpense = errors.New("unknown expense")
)
