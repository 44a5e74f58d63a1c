package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account allowed to operate the ledger when auth is enabled.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is unique and used for login.
	Email string

	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh id and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
