package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// memoryUsers is an in-memory storage.UserStore.
type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return storage.ErrDuplicate
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newTestAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(newMemoryUsers())
	a.cost = bcrypt.MinCost
	return a
}

func TestPasswordAuthenticator_Register(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	user, err := a.Register(ctx, "  Alice@Example.com ", " Alice ", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" || user.DisplayName != "Alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "correct horse" || user.ID == "" {
		t.Errorf("password should be hashed and id assigned: %+v", user)
	}

	if _, err := a.Register(ctx, "ALICE@example.com", "Other", "another pass"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
	if _, err := a.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestPasswordAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()
	registered, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "alice@example.com", "correct horse", false},
		{"email case ignored", "ALICE@example.com", "correct horse", false},
		{"wrong password", "alice@example.com", "battery staple", true},
		{"unknown email", "nobody@example.com", "correct horse", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if user.ID != registered.ID {
				t.Errorf("got user %s, want %s", user.ID, registered.ID)
			}
		})
	}
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	m := NewJWTManager("0123456789abcdef", time.Hour)

	token, expiresAt, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expiresAt) <= 59*time.Minute {
		t.Errorf("unexpected expiry %v", expiresAt)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Subject != "user-1" || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("fedcba9876543210", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		i := strings.LastIndex(token, ".") + 5
		replacement := "A"
		if token[i] == 'A' {
			replacement = "B"
		}
		tampered := token[:i] + replacement + token[i+1:]
		if _, err := m.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		later := NewJWTManager("0123456789abcdef", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
