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

const paymentColumns = "id, date, amount_cents, payer_id, recipient_id, category_id, note"

// CreatePayment persists a new payment and assigns its id.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (date, amount_cents, payer_id, recipient_id, category_id, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		formatDate(payment.Date), payment.Amount, payment.PayerID, payment.RecipientID,
		nullableID(payment.CategoryID), nullableText(payment.Note), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	payment.ID = id
	return nil
}

// GetPayment retrieves a payment by id.
func (s *SQLiteStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)
	payment, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPayments returns the payments in r ordered by date then id.
func (s *SQLiteStore) ListPayments(ctx context.Context, r storage.DateRange) ([]*models.Payment, error) {
	return listPayments(ctx, s.db, r)
}

func listPayments(ctx context.Context, q querier, r storage.DateRange) ([]*models.Payment, error) {
	where, args := dateRangeClause("date", r)
	rows, err := q.QueryContext(ctx, "SELECT "+paymentColumns+" FROM payments"+where+" ORDER BY date, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// UpdatePayment rewrites every field of an existing payment.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE payments
		 SET date = ?, amount_cents = ?, payer_id = ?, recipient_id = ?, category_id = ?, note = ?
		 WHERE id = ?`,
		formatDate(payment.Date), payment.Amount, payment.PayerID, payment.RecipientID,
		nullableID(payment.CategoryID), nullableText(payment.Note), payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return checkAffected(res, "payment", payment.ID)
}

// DeletePayment removes a payment by id.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return checkAffected(res, "payment", id)
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}
	var date string
	var category sql.NullInt64
	var note sql.NullString

	if err := row.Scan(&payment.ID, &date, &payment.Amount, &payment.PayerID, &payment.RecipientID,
		&category, &note); err != nil {
		return nil, err
	}

	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	payment.Date = d
	payment.CategoryID = category.Int64
	if note.Valid {
		payment.Note = note.String
	}
	return payment, nil
}
