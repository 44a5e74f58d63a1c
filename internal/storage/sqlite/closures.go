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

// CloseMonth records a lock for (year, month, category).
func (s *SQLiteStore) CloseMonth(ctx context.Context, closure *models.MonthClosure) error {
	if closure.ClosedAt.IsZero() {
		closure.ClosedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO month_closures (year, month, category_id, closed_at, note) VALUES (?, ?, ?, ?, ?)",
		closure.Year, closure.Month, closure.CategoryID, closure.ClosedAt.Unix(), nullableText(closure.Note),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("month %02d/%d: %w", closure.Month, closure.Year, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert month closure: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read closure id: %w", err)
	}
	closure.ID = id
	return nil
}

// ReopenMonth removes the lock for (year, month, category).
func (s *SQLiteStore) ReopenMonth(ctx context.Context, year, month int, categoryID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM month_closures WHERE year = ? AND month = ? AND category_id = ?",
		year, month, categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete month closure: %w", err)
	}
	return checkAffected(res, "closure", fmt.Sprintf("%02d/%d", month, year))
}

// IsMonthClosed reports whether (year, month, category) is locked.
// Uncategorized rows are never locked.
func (s *SQLiteStore) IsMonthClosed(ctx context.Context, year, month int, categoryID int64) (bool, error) {
	if categoryID == 0 {
		return false, nil
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM month_closures WHERE year = ? AND month = ? AND category_id = ?",
		year, month, categoryID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check month closure: %w", err)
	}
	return true, nil
}

// ListClosures returns closures sorted by category name, year and month.
func (s *SQLiteStore) ListClosures(ctx context.Context, categoryID int64) ([]*models.MonthClosure, error) {
	query := `
		SELECT mc.id, mc.year, mc.month, mc.category_id, c.name, mc.closed_at, mc.note
		FROM month_closures mc
		JOIN categories c ON c.id = mc.category_id`
	var args []any
	if categoryID != 0 {
		query += " WHERE mc.category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY c.name COLLATE NOCASE, mc.year, mc.month"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list month closures: %w", err)
	}
	defer rows.Close()

	var closures []*models.MonthClosure
	for rows.Next() {
		closure := &models.MonthClosure{}
		var closedAt int64
		var note sql.NullString
		if err := rows.Scan(&closure.ID, &closure.Year, &closure.Month, &closure.CategoryID,
			&closure.CategoryName, &closedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan month closure: %w", err)
		}
		closure.ClosedAt = time.Unix(closedAt, 0).UTC()
		closure.Note = note.String
		closures = append(closures, closure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate month closures: %w", err)
	}
	return closures, nil
}
