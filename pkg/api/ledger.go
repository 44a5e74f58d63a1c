// Package api defines the request and response messages of the ledger RPC
// services. Messages travel as JSON; amounts are decimal strings with two
// places at most ("133.34") and dates are "YYYY-MM-DD".
package api

import "github.com/shopspring/decimal"

type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreatePersonRequest struct {
	Name string `json:"name"`
}

type CreatePersonResponse struct {
	Person *Person `json:"person"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []*Person `json:"people"`
}

type UpdatePersonRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UpdatePersonResponse struct {
	Person *Person `json:"person"`
}

type DeletePersonRequest struct {
	ID int64 `json:"id"`
}

type DeletePersonResponse struct{}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateCategoryResponse struct {
	Category *Category `json:"category"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type UpdateCategoryRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UpdateCategoryResponse struct {
	Category *Category `json:"category"`
}

type DeleteCategoryRequest struct {
	ID int64 `json:"id"`
}

type DeleteCategoryResponse struct{}

// Share is the part of an expense owed by one person.
type Share struct {
	PersonID   int64           `json:"person_id"`
	PersonName string          `json:"person_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

type Expense struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	PayerID      int64           `json:"payer_id"`
	PayerName    string          `json:"payer_name"`
	CategoryID   int64           `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Divided      bool            `json:"divided"`
	Shares       []*Share        `json:"shares"`
}

// ExpenseInput carries the editable fields of an expense.
//
// With Divide set, the amount is split equally among ParticipantIDs (the
// payer is added when missing). Otherwise Debtors lists who owes what; the
// payer may not be a debtor and the amounts must add up to Amount.
// A zero CategoryID selects the month's default category.
type ExpenseInput struct {
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        int64           `json:"payer_id"`
	CategoryID     int64           `json:"category_id,omitempty"`
	Divide         bool            `json:"divide"`
	ParticipantIDs []int64         `json:"participant_ids,omitempty"`
	Debtors        []*Share        `json:"debtors,omitempty"`
}

type CreateExpenseRequest struct {
	ExpenseInput
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID int64 `json:"id"`
	ExpenseInput
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID int64 `json:"id"`
}

type DeleteExpenseResponse struct{}

// ListExpensesRequest filters by an optional inclusive date range.
type ListExpensesRequest struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type Payment struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	PayerID       int64           `json:"payer_id"`
	PayerName     string          `json:"payer_name"`
	RecipientID   int64           `json:"recipient_id"`
	RecipientName string          `json:"recipient_name"`
	CategoryID    int64           `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	Note          string          `json:"note,omitempty"`
}

type PaymentInput struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	PayerID     int64           `json:"payer_id"`
	RecipientID int64           `json:"recipient_id"`
	CategoryID  int64           `json:"category_id,omitempty"`
	Note        string          `json:"note,omitempty"`
}

type CreatePaymentRequest struct {
	PaymentInput
}

type CreatePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type UpdatePaymentRequest struct {
	ID int64 `json:"id"`
	PaymentInput
}

type UpdatePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	ID int64 `json:"id"`
}

type DeletePaymentResponse struct{}

type ListPaymentsRequest struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type ListPaymentsResponse struct {
	Payments []*Payment     `json:"payments"`
	Total    decimal.Decimal `json:"total"`
}

type Closure struct {
	ID           int64  `json:"id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ClosedAt     string `json:"closed_at"`
	Note         string `json:"note,omitempty"`
}

type CloseMonthRequest struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	CategoryID int64  `json:"category_id,omitempty"`
	Note       string `json:"note,omitempty"`
}

type CloseMonthResponse struct {
	Closure *Closure `json:"closure"`
}

type ReopenMonthRequest struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	CategoryID int64 `json:"category_id,omitempty"`
}

type ReopenMonthResponse struct{}

type ListClosuresRequest struct {
	CategoryID int64 `json:"category_id,omitempty"`
}

type ListClosuresResponse struct {
	Closures []*Closure `json:"closures"`
}
