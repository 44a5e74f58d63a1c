package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/storage"
)

// LoadLedger reads people, expenses with shares and payments in r from one
// read transaction, so a concurrent write is either fully visible or not at
// all.
func (s *SQLiteStore) LoadLedger(ctx context.Context, r storage.DateRange) (*storage.Ledger, error) {
	ledger := &storage.Ledger{}
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		var err error
		if ledger.People, err = listPeople(ctx, tx); err != nil {
			return err
		}
		if s.afterFirstRead != nil {
			s.afterFirstRead()
		}
		if ledger.Expenses, err = listExpenses(ctx, tx, r); err != nil {
			return err
		}
		ledger.Payments, err = listPayments(ctx, tx, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger, nil
}
