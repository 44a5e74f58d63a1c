package models

import "fmt"

// Category groups expenses and payments, typically one per month.
type Category struct {
	ID   int64
	Name string
}

// MonthCategoryName is the name of the default category used for a month
// when no category is given explicitly, e.g. "Month/03".
func MonthCategoryName(month int) string {
	return fmt.Sprintf("Month/%02d", month)
}
