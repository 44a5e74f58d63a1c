package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const expenseColumns = "id, description, date, amount_cents, payer_id, category_id, divided"

// CreateExpense persists an expense and its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (description, date, amount_cents, payer_id, category_id, divided, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.Description, formatDate(expense.Date), expense.Amount, expense.PayerID,
		nullableID(expense.CategoryID), expense.Divided, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	if err := insertShares(ctx, tx, id, expense.Shares); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	expense.ID = id
	for i := range expense.Shares {
		expense.Shares[i].ExpenseID = id
	}
	return nil
}

// GetExpense retrieves an expense with its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	var expense *models.Expense
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
		var err error
		expense, err = scanExpense(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}

		shares, err := loadShares(ctx, tx, "WHERE s.expense_id = ?", id)
		if err != nil {
			return err
		}
		expense.Shares = shares[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns the expenses in r ordered by date then id. Expenses
// and shares are read in one transaction so they always match.
func (s *SQLiteStore) ListExpenses(ctx context.Context, r storage.DateRange) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		var err error
		expenses, err = listExpenses(ctx, tx, r)
		return err
	})
	return expenses, err
}

func listExpenses(ctx context.Context, q querier, r storage.DateRange) ([]*models.Expense, error) {
	where, args := dateRangeClause("date", r)
	rows, err := q.QueryContext(ctx, "SELECT "+expenseColumns+" FROM expenses"+where+" ORDER BY date, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	shareWhere, shareArgs := dateRangeClause("e.date", r)
	shares, err := loadShares(ctx, q,
		"JOIN expenses e ON e.id = s.expense_id"+shareWhere, shareArgs...)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.Shares = shares[expense.ID]
	}
	return expenses, nil
}

// UpdateExpense rewrites an expense and replaces its shares.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, date = ?, amount_cents = ?, payer_id = ?, category_id = ?, divided = ?
		 WHERE id = ?`,
		expense.Description, formatDate(expense.Date), expense.Amount, expense.PayerID,
		nullableID(expense.CategoryID), expense.Divided, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := checkAffected(res, "expense", expense.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense shares: %w", err)
	}
	if err := insertShares(ctx, tx, expense.ID, expense.Shares); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	for i := range expense.Shares {
		expense.Shares[i].ExpenseID = expense.ID
	}
	return nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return checkAffected(res, "expense", id)
}

// ExpenseExists reports whether a different expense has the same
// description, date, amount, payer and category.
func (s *SQLiteStore) ExpenseExists(ctx context.Context, expense *models.Expense) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM expenses
		 WHERE description = ? AND date = ? AND amount_cents = ? AND payer_id = ?
		   AND category_id IS ? AND id <> ?
		 LIMIT 1`,
		expense.Description, formatDate(expense.Date), expense.Amount, expense.PayerID,
		nullableID(expense.CategoryID), expense.ID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate expense: %w", err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var date string
	var category sql.NullInt64
	if err := row.Scan(&expense.ID, &expense.Description, &date, &expense.Amount,
		&expense.PayerID, &category, &expense.Divided); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	expense.Date = d
	expense.CategoryID = category.Int64
	return expense, nil
}

func insertShares(ctx context.Context, q querier, expenseID int64, shares []models.ExpenseShare) error {
	for _, share := range shares {
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, person_id, amount_cents) VALUES (?, ?, ?)",
			expenseID, share.PersonID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share of person %d: %w", share.PersonID, err)
		}
	}
	return nil
}

// loadShares returns shares grouped by expense id, ordered by person id.
// tail is appended after "FROM expense_shares s".
func loadShares(ctx context.Context, q querier, tail string, args ...any) (map[int64][]models.ExpenseShare, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT s.expense_id, s.person_id, s.amount_cents FROM expense_shares s "+tail+
			" ORDER BY s.expense_id, s.person_id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[int64][]models.ExpenseShare)
	for rows.Next() {
		var share models.ExpenseShare
		if err := rows.Scan(&share.ExpenseID, &share.PersonID, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares[share.ExpenseID] = append(shares[share.ExpenseID], share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}
