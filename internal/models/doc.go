// Package models defines the persisted entities of the ledger.
//
// Amounts are integer cents (money.Cents). Dates are calendar days stored
// without a time of day. Relationships use ids rather than pointers, so a
// Payment names its parties by Person id and an Expense carries its shares
// by value.
//
// CategoryID 0 means "no category" for expenses, payments and closures.
package models
