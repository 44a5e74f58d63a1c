package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GetOrCreateCategory returns the category named name, inserting it if needed.
func (s *SQLiteStore) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	category := &models.Category{}
	err = s.db.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE name = ?", name).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %q: %w", name, err)
	}
	return category, nil
}

// GetCategory retrieves a category by id.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id = ?", id).
		Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns categories sorted by name, ignoring case.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.ExecContext(ctx, "UPDATE categories SET name = ? WHERE id = ?", category.Name, category.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", category.Name, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return checkAffected(res, "category", category.ID)
}

// DeleteCategory removes an unused category.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	var refs int
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM expenses WHERE category_id = ?1) +
			(SELECT COUNT(*) FROM payments WHERE category_id = ?1) +
			(SELECT COUNT(*) FROM month_closures WHERE category_id = ?1)
	`, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("category %d is used by %d rows: %w", id, refs, storage.ErrInUse)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return checkAffected(res, "category", id)
}
