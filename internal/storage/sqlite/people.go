package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreatePerson inserts a person and assigns its id.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx, "INSERT INTO people (name) VALUES (?)", person.Name)
	if isUniqueViolation(err) {
		return fmt.Errorf("person %q: %w", person.Name, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read person id: %w", err)
	}
	person.ID = id
	return nil
}

// GetPerson retrieves a person by id.
func (s *SQLiteStore) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	person := &models.Person{}
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM people WHERE id = ?", id).
		Scan(&person.ID, &person.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPeople returns every person ordered by id.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	return listPeople(ctx, s.db)
}

func listPeople(ctx context.Context, q querier) ([]*models.Person, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM people ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person := &models.Person{}
		if err := rows.Scan(&person.ID, &person.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// UpdatePerson renames a person.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx, "UPDATE people SET name = ? WHERE id = ?", person.Name, person.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("person %q: %w", person.Name, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return checkAffected(res, "person", person.ID)
}

// DeletePerson removes a person nobody references.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id int64) error {
	var refs int
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM expenses WHERE payer_id = ?1) +
			(SELECT COUNT(*) FROM expense_shares WHERE person_id = ?1) +
			(SELECT COUNT(*) FROM payments WHERE payer_id = ?1 OR recipient_id = ?1)
	`, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check person references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("person %d has %d expenses, shares or payments: %w", id, refs, storage.ErrInUse)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return checkAffected(res, "person", id)
}
