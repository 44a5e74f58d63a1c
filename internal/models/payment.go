package models

import (
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// Payment is money handed from one person to another to settle debt.
type Payment struct {
	ID int64

	Date   time.Time
	Amount money.Cents

	// PayerID is the person who paid (debtor settling up).
	PayerID int64

	// RecipientID is the person who received the money.
	RecipientID int64

	CategoryID int64

	// Note is an optional free-text description.
	Note string
}
