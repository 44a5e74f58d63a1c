package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPerson(t *testing.T, store *SQLiteStore, name string) *models.Person {
	t.Helper()
	p := &models.Person{Name: name}
	if err := store.CreatePerson(context.Background(), p); err != nil {
		t.Fatalf("CreatePerson(%s) failed: %v", name, err)
	}
	return p
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("first New failed: %v", err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("second New on migrated database failed: %v", err)
	}
	second.Close()
}

func TestPeople(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustPerson(t, store, "Alice")
	bob := mustPerson(t, store, "Bob")

	t.Run("ids follow insertion order", func(t *testing.T) {
		if alice.ID == 0 || bob.ID <= alice.ID {
			t.Errorf("unexpected ids: alice=%d bob=%d", alice.ID, bob.ID)
		}
	})

	t.Run("names are unique ignoring case", func(t *testing.T) {
		err := store.CreatePerson(ctx, &models.Person{Name: "ALICE"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("update and list", func(t *testing.T) {
		bob.Name = "Robert"
		if err := store.UpdatePerson(ctx, bob); err != nil {
			t.Fatalf("UpdatePerson failed: %v", err)
		}
		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 2 || people[0].Name != "Alice" || people[1].Name != "Robert" {
			t.Errorf("unexpected people: %+v %+v", people[0], people[1])
		}
	})

	t.Run("update missing person", func(t *testing.T) {
		err := store.UpdatePerson(ctx, &models.Person{ID: 999, Name: "Ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("get missing person", func(t *testing.T) {
		_, err := store.GetPerson(ctx, 999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete referenced person", func(t *testing.T) {
		expense := &models.Expense{
			Description: "Pizza", Date: date(2026, 1, 5), Amount: 2000, PayerID: alice.ID, Divided: true,
			Shares: []models.ExpenseShare{{PersonID: alice.ID, Amount: 1000}, {PersonID: bob.ID, Amount: 1000}},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeletePerson(ctx, bob.ID); !errors.Is(err, storage.ErrInUse) {
			t.Errorf("expected ErrInUse, got %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeletePerson(ctx, bob.ID); err != nil {
			t.Errorf("DeletePerson after expense removal failed: %v", err)
		}
	})
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.GetOrCreateCategory(ctx, "Month/01")
	if err != nil {
		t.Fatalf("GetOrCreateCategory failed: %v", err)
	}
	again, err := store.GetOrCreateCategory(ctx, "month/01")
	if err != nil {
		t.Fatalf("GetOrCreateCategory failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected the existing category, got id %d vs %d", again.ID, first.ID)
	}

	trip, err := store.GetOrCreateCategory(ctx, "beach trip")
	if err != nil {
		t.Fatalf("GetOrCreateCategory failed: %v", err)
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 || categories[0].Name != "beach trip" || categories[1].Name != "Month/01" {
		t.Errorf("expected case-insensitive ordering, got %+v %+v", categories[0], categories[1])
	}

	trip.Name = "MONTH/01"
	if err := store.UpdateCategory(ctx, trip); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if err := store.CloseMonth(ctx, &models.MonthClosure{Year: 2026, Month: 1, CategoryID: first.ID}); err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, first.ID); !errors.Is(err, storage.ErrInUse) {
		t.Errorf("expected ErrInUse, got %v", err)
	}
	if err := store.DeleteCategory(ctx, trip.ID); err != nil {
		t.Errorf("DeleteCategory failed: %v", err)
	}
	if _, err := store.GetCategory(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustPerson(t, store, "Alice")
	bob := mustPerson(t, store, "Bob")
	charlie := mustPerson(t, store, "Charlie")
	category, err := store.GetOrCreateCategory(ctx, "Month/01")
	if err != nil {
		t.Fatalf("GetOrCreateCategory failed: %v", err)
	}

	expense := &models.Expense{
		Description: "Groceries",
		Date:        date(2026, 1, 10),
		Amount:      400,
		PayerID:     alice.ID,
		CategoryID:  category.ID,
		Divided:     true,
		Shares: []models.ExpenseShare{
			{PersonID: alice.ID, Amount: 134},
			{PersonID: bob.ID, Amount: 133},
			{PersonID: charlie.ID, Amount: 133},
		},
	}

	t.Run("create assigns ids", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == 0 {
			t.Fatal("expected expense id to be assigned")
		}
		for _, s := range expense.Shares {
			if s.ExpenseID != expense.ID {
				t.Errorf("share %+v not linked to expense %d", s, expense.ID)
			}
		}
	})

	t.Run("get returns shares", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Date.Equal(expense.Date) || got.Amount != 400 || !got.Divided || got.CategoryID != category.ID {
			t.Errorf("unexpected expense: %+v", got)
		}
		if len(got.Shares) != 3 || got.Shares[0].Amount != 134 {
			t.Errorf("unexpected shares: %+v", got.Shares)
		}
	})

	t.Run("duplicate detection excludes itself", func(t *testing.T) {
		dup := *expense
		dup.ID = 0
		exists, err := store.ExpenseExists(ctx, &dup)
		if err != nil {
			t.Fatalf("ExpenseExists failed: %v", err)
		}
		if !exists {
			t.Error("expected duplicate to be detected")
		}

		exists, err = store.ExpenseExists(ctx, expense)
		if err != nil {
			t.Fatalf("ExpenseExists failed: %v", err)
		}
		if exists {
			t.Error("an expense should not duplicate itself")
		}
	})

	t.Run("failed share insert rolls back", func(t *testing.T) {
		bad := &models.Expense{
			Description: "Broken", Date: date(2026, 1, 11), Amount: 100, PayerID: alice.ID,
			Shares: []models.ExpenseShare{{PersonID: 999, Amount: 100}},
		}
		if err := store.CreateExpense(ctx, bad); err == nil {
			t.Fatal("expected foreign key failure")
		}
		expenses, err := store.ListExpenses(ctx, storage.DateRange{})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("expected the broken expense to be rolled back, got %d expenses", len(expenses))
		}
	})

	t.Run("update replaces shares", func(t *testing.T) {
		expense.Amount = 1000
		expense.Divided = false
		expense.Shares = []models.ExpenseShare{{PersonID: bob.ID, Amount: 1000}}
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Divided || len(got.Shares) != 1 || got.Shares[0].PersonID != bob.ID {
			t.Errorf("unexpected expense after update: %+v", got)
		}
	})

	t.Run("list filters by date range", func(t *testing.T) {
		feb := &models.Expense{
			Description: "Rent", Date: date(2026, 2, 1), Amount: 500, PayerID: bob.ID,
			Shares: []models.ExpenseShare{{PersonID: alice.ID, Amount: 500}},
		}
		if err := store.CreateExpense(ctx, feb); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		jan, err := store.ListExpenses(ctx, storage.DateRange{Start: date(2026, 1, 1), End: date(2026, 1, 31)})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(jan) != 1 || jan[0].ID != expense.ID || len(jan[0].Shares) != 1 {
			t.Errorf("unexpected January expenses: %+v", jan)
		}

		all, err := store.ListExpenses(ctx, storage.DateRange{})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(all) != 2 || all[1].CategoryID != 0 {
			t.Errorf("unexpected expenses: %+v", all)
		}
	})

	t.Run("delete missing expense", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustPerson(t, store, "Alice")
	bob := mustPerson(t, store, "Bob")

	payment := &models.Payment{
		Date: date(2026, 3, 2), Amount: 2500, PayerID: bob.ID, RecipientID: alice.ID, Note: "pix",
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	got, err := store.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if !got.Date.Equal(payment.Date) || got.Amount != 2500 || got.PayerID != bob.ID ||
		got.RecipientID != alice.ID || got.CategoryID != 0 || got.Note != "pix" {
		t.Errorf("GetPayment = %+v, want %+v", got, payment)
	}

	payment.Note = ""
	payment.Amount = 3000
	if err := store.UpdatePayment(ctx, payment); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}

	list, err := store.ListPayments(ctx, storage.DateRange{Start: date(2026, 3, 1)})
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list) != 1 || list[0].Amount != 3000 || list[0].Note != "" {
		t.Errorf("unexpected payments: %+v", list)
	}

	list, err = store.ListPayments(ctx, storage.DateRange{End: date(2026, 3, 1)})
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no payments before March 2nd, got %d", len(list))
	}

	selfPayment := &models.Payment{Date: date(2026, 3, 3), Amount: 100, PayerID: alice.ID, RecipientID: alice.ID}
	if err := store.CreatePayment(ctx, selfPayment); err == nil {
		t.Error("expected self-payment to violate the check constraint")
	}

	if err := store.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	if _, err := store.GetPayment(ctx, payment.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMonthClosures(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	jan, _ := store.GetOrCreateCategory(ctx, "Month/01")
	feb, _ := store.GetOrCreateCategory(ctx, "Month/02")

	for _, c := range []*models.MonthClosure{
		{Year: 2026, Month: 2, CategoryID: feb.ID, Note: "done"},
		{Year: 2026, Month: 1, CategoryID: jan.ID},
	} {
		if err := store.CloseMonth(ctx, c); err != nil {
			t.Fatalf("CloseMonth failed: %v", err)
		}
	}

	err := store.CloseMonth(ctx, &models.MonthClosure{Year: 2026, Month: 1, CategoryID: jan.ID})
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	closed, err := store.IsMonthClosed(ctx, 2026, 1, jan.ID)
	if err != nil || !closed {
		t.Errorf("IsMonthClosed = %v, %v; want true", closed, err)
	}
	closed, err = store.IsMonthClosed(ctx, 2026, 1, 0)
	if err != nil || closed {
		t.Errorf("uncategorized month should never be closed, got %v, %v", closed, err)
	}

	list, err := store.ListClosures(ctx, 0)
	if err != nil {
		t.Fatalf("ListClosures failed: %v", err)
	}
	if len(list) != 2 || list[0].CategoryName != "Month/01" || list[1].Note != "done" {
		t.Errorf("unexpected closures: %+v", list)
	}

	if err := store.ReopenMonth(ctx, 2026, 1, jan.ID); err != nil {
		t.Fatalf("ReopenMonth failed: %v", err)
	}
	if err := store.ReopenMonth(ctx, 2026, 1, jan.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound reopening an open month, got %v", err)
	}

	list, err = store.ListClosures(ctx, feb.ID)
	if err != nil {
		t.Fatalf("ListClosures failed: %v", err)
	}
	if len(list) != 1 || list[0].Month != 2 {
		t.Errorf("unexpected closures for February: %+v", list)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil || got == nil || got.ID != user.ID {
		t.Fatalf("GetUserByEmail = %+v, %v", got, err)
	}

	missing, err := store.GetUserByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for a missing user, got %+v, %v", missing, err)
	}

	dup := models.NewUser("ALICE@example.com", "Alice 2", "hash")
	if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestLoadLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustPerson(t, store, "Alice")
	bob := mustPerson(t, store, "Bob")
	lunch := &models.Expense{
		Description: "Lunch",
		Date:        date(2026, 2, 3),
		Amount:      1000,
		PayerID:     alice.ID,
		Shares:      []models.ExpenseShare{{PersonID: bob.ID, Amount: 1000}},
	}
	if err := store.CreateExpense(ctx, lunch); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if err := store.CreatePayment(ctx, &models.Payment{
		Date: date(2026, 2, 4), Amount: 500, PayerID: bob.ID, RecipientID: alice.ID,
	}); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if err := store.CreateExpense(ctx, &models.Expense{
		Description: "Rent",
		Date:        date(2026, 3, 1),
		Amount:      9000,
		PayerID:     bob.ID,
		Shares:      []models.ExpenseShare{{PersonID: alice.ID, Amount: 9000}},
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	t.Run("range bounds expenses and payments but not people", func(t *testing.T) {
		got, err := store.LoadLedger(ctx, storage.DateRange{End: date(2026, 2, 28)})
		if err != nil {
			t.Fatalf("LoadLedger failed: %v", err)
		}
		if len(got.People) != 2 || len(got.Expenses) != 1 || len(got.Payments) != 1 {
			t.Fatalf("LoadLedger = %d people, %d expenses, %d payments; want 2, 1, 1",
				len(got.People), len(got.Expenses), len(got.Payments))
		}
		if len(got.Expenses[0].Shares) != 1 || got.Expenses[0].Shares[0].Amount != 1000 {
			t.Errorf("unexpected shares: %+v", got.Expenses[0].Shares)
		}
	})

	t.Run("writes committed mid-read stay invisible", func(t *testing.T) {
		store.afterFirstRead = func() {
			store.afterFirstRead = nil

			zed := &models.Person{Name: "Zed"}
			if err := store.CreatePerson(ctx, zed); err != nil {
				t.Errorf("CreatePerson during read failed: %v", err)
				return
			}
			if err := store.CreateExpense(ctx, &models.Expense{
				Description: "Taxi",
				Date:        date(2026, 2, 5),
				Amount:      300,
				PayerID:     zed.ID,
				Shares:      []models.ExpenseShare{{PersonID: alice.ID, Amount: 300}},
			}); err != nil {
				t.Errorf("CreateExpense during read failed: %v", err)
			}

			changed := *lunch
			changed.Amount = 2000
			changed.Shares = []models.ExpenseShare{{PersonID: bob.ID, Amount: 2000}}
			if err := store.UpdateExpense(ctx, &changed); err != nil {
				t.Errorf("UpdateExpense during read failed: %v", err)
			}
		}

		got, err := store.LoadLedger(ctx, storage.DateRange{Start: date(2026, 2, 1), End: date(2026, 2, 28)})
		if err != nil {
			t.Fatalf("LoadLedger failed: %v", err)
		}
		if len(got.People) != 2 {
			t.Errorf("people = %d, want 2", len(got.People))
		}
		if len(got.Expenses) != 1 {
			t.Fatalf("expenses = %d, want 1", len(got.Expenses))
		}
		e := got.Expenses[0]
		if e.Amount != 1000 || len(e.Shares) != 1 || e.Shares[0].Amount != 1000 {
			t.Errorf("expense mixes old and new rows: %+v", e)
		}

		after, err := store.LoadLedger(ctx, storage.DateRange{Start: date(2026, 2, 1), End: date(2026, 2, 28)})
		if err != nil {
			t.Fatalf("LoadLedger failed: %v", err)
		}
		if len(after.People) != 3 || len(after.Expenses) != 2 {
			t.Fatalf("after commit: %d people, %d expenses; want 3, 2", len(after.People), len(after.Expenses))
		}
		if after.Expenses[0].Amount != 2000 || after.Expenses[0].Shares[0].Amount != 2000 {
			t.Errorf("updated expense not visible: %+v", after.Expenses[0])
		}
	})
}
