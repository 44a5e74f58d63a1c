package calculator

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoDate = "2006-01-02"
	brDate  = "02/01/2006"

	minYear = 2000
	maxYear = 2100
)

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or DD/MM/YYYY.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidPeriod)
	}
	layout := brDate
	if len(value) == 10 && value[4] == '-' && value[7] == '-' {
		layout = isoDate
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not DD/MM/YYYY or YYYY-MM-DD", ErrInvalidPeriod, raw)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(isoDate)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates year and month.
func NewYearMonth(year, month int) (YearMonth, error) {
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidPeriod, month)
	}
	if year < minYear || year > maxYear {
		return YearMonth{}, fmt.Errorf("%w: year must be between %d and %d, got %d", ErrInvalidPeriod, minYear, maxYear, year)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// First returns the first day of the month.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month.
func (ym YearMonth) Last() time.Time {
	return ym.First().AddDate(0, 1, -1)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d/%d", int(ym.Month), ym.Year)
}

// CategoryFilter selects records by category. The zero value matches
// everything.
type CategoryFilter struct {
	// CategoryID restricts matches to one category when non-zero.
	CategoryID int64
	// IncludeUncategorized also matches records without a category when
	// CategoryID is set.
	IncludeUncategorized bool
}

// UncategorizedOnly matches only records without a category.
var UncategorizedOnly = CategoryFilter{CategoryID: -1, IncludeUncategorized: true}

// Matches reports whether a record in categoryID (0 = none) is selected.
func (f CategoryFilter) Matches(categoryID int64) bool {
	if f.CategoryID == 0 {
		return true
	}
	if categoryID != 0 {
		return categoryID == f.CategoryID
	}
	return f.IncludeUncategorized
}

// Period is a closed date range plus a category filter.
type Period struct {
	Start    time.Time
	End      time.Time
	Category CategoryFilter
}

// NewPeriod returns the closed range [start, end].
func NewPeriod(start, end time.Time, category CategoryFilter) (Period, error) {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, FormatDate(end), FormatDate(start))
	}
	return Period{Start: start, End: end, Category: category}, nil
}

// MonthPeriod returns the period covering ym.
func MonthPeriod(ym YearMonth, category CategoryFilter) Period {
	return Period{Start: ym.First(), End: ym.Last(), Category: category}
}

// Contains reports whether the date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Date(t)
	return !d.Before(p.Start) && !d.After(p.End)
}
