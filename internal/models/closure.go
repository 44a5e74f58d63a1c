package models

import "time"

// MonthClosure locks a (year, month, category) against changes.
// While a closure exists, expenses and payments dated in that month and
// category cannot be created, edited or deleted.
type MonthClosure struct {
	ID         int64
	Year       int
	Month      int
	CategoryID int64

	// CategoryName is filled in by listing queries.
	CategoryName string

	ClosedAt time.Time
	Note     string
}
