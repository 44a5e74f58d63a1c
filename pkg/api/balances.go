package api

import "github.com/shopspring/decimal"

type Balance struct {
	PersonID   int64           `json:"person_id"`
	Name       string          `json:"name"`
	Paid       decimal.Decimal `json:"paid"`
	Owed       decimal.Decimal `json:"owed"`
	Net        decimal.Decimal `json:"net"`
	Receivable decimal.Decimal `json:"receivable"`
	Payable    decimal.Decimal `json:"payable"`
}

// Transfer is one "from pays to" instruction or outstanding debt edge.
type Transfer struct {
	FromID   int64           `json:"from_id"`
	FromName string          `json:"from_name"`
	ToID     int64           `json:"to_id"`
	ToName   string          `json:"to_name"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthQuery selects a calendar month. Without a category the month's
// default category is used together with uncategorized rows.
type MonthQuery struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	CategoryID int64 `json:"category_id,omitempty"`
}

// PeriodQuery selects an inclusive date range. Without a category every
// category is included.
type PeriodQuery struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	CategoryID int64  `json:"category_id,omitempty"`
}

type BalancesResponse struct {
	Start    string     `json:"start"`
	End      string     `json:"end"`
	Balances []*Balance `json:"balances"`
}

type TransfersResponse struct {
	Start     string      `json:"start"`
	End       string      `json:"end"`
	Transfers []*Transfer `json:"transfers"`
}

// CumulativeDebtRequest asks who owes whom at the end of a month. A zero
// CategoryID includes every category.
type CumulativeDebtRequest struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	CategoryID int64 `json:"category_id,omitempty"`
}

type CumulativeDebtResponse struct {
	Debts []*Transfer `json:"debts"`
}
