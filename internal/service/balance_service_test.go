package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// marketScenario records a 400.00 March expense paid by Alice and divided
// among Alice, Bob and Carol.
func marketScenario(t *testing.T, c *testClients) (alice, bob, carol int64) {
	t.Helper()
	alice, bob, carol = threePeople(t, c)
	c.mustExpense(t, api.ExpenseInput{
		Description:    "Market",
		Date:           "2025-03-15",
		Amount:         dec("400.00"),
		PayerID:        alice,
		Divide:         true,
		ParticipantIDs: []int64{bob, carol},
	})
	return alice, bob, carol
}

func balanceOf(t *testing.T, balances []*api.Balance, id int64) *api.Balance {
	t.Helper()
	for _, b := range balances {
		if b.PersonID == id {
			return b
		}
	}
	t.Fatalf("no balance for person %d", id)
	return nil
}

func TestBalanceService_MonthBalances(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice, bob, carol := marketScenario(t, c)

	resp, err := c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("GetMonthBalances failed: %v", err)
	}
	if resp.Msg.Start != "2025-03-01" || resp.Msg.End != "2025-03-31" {
		t.Errorf("period = %s..%s, want 2025-03-01..2025-03-31", resp.Msg.Start, resp.Msg.End)
	}
	if len(resp.Msg.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(resp.Msg.Balances))
	}
	if resp.Msg.Balances[0].PersonID != alice {
		t.Errorf("expected the creditor first, got person %d", resp.Msg.Balances[0].PersonID)
	}

	a := balanceOf(t, resp.Msg.Balances, alice)
	assertAmount(t, "alice paid", a.Paid, "400.00")
	assertAmount(t, "alice owed", a.Owed, "133.34")
	assertAmount(t, "alice net", a.Net, "266.66")
	assertAmount(t, "alice receivable", a.Receivable, "266.66")
	assertAmount(t, "alice payable", a.Payable, "0")

	for _, id := range []int64{bob, carol} {
		b := balanceOf(t, resp.Msg.Balances, id)
		assertAmount(t, "paid", b.Paid, "0")
		assertAmount(t, "owed", b.Owed, "133.33")
		assertAmount(t, "net", b.Net, "-133.33")
		assertAmount(t, "payable", b.Payable, "133.33")
	}
}

func TestBalanceService_Transfers(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice, bob, carol := marketScenario(t, c)

	resp, err := c.balances.GetMonthTransfers(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("GetMonthTransfers failed: %v", err)
	}

	transfers := resp.Msg.Transfers
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
	}
	for i, from := range []int64{bob, carol} {
		if transfers[i].FromID != from || transfers[i].ToID != alice {
			t.Errorf("transfer %d = %d->%d, want %d->%d", i, transfers[i].FromID, transfers[i].ToID, from, alice)
		}
		assertAmount(t, "transfer", transfers[i].Amount, "133.33")
	}
	if transfers[0].FromName != "Bob" || transfers[0].ToName != "Alice" {
		t.Errorf("names = %s->%s, want Bob->Alice", transfers[0].FromName, transfers[0].ToName)
	}

	period, err := c.balances.GetPeriodTransfers(ctx, connect.NewRequest(&api.PeriodQuery{Start: "2025-01-01", End: "2025-12-31"}))
	if err != nil {
		t.Fatalf("GetPeriodTransfers failed: %v", err)
	}
	if len(period.Msg.Transfers) != 2 {
		t.Errorf("expected 2 transfers for the year, got %d", len(period.Msg.Transfers))
	}
}

func TestBalanceService_CategoryFilters(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice, bob, _ := marketScenario(t, c)

	trip, err := c.categories.CreateCategory(ctx, connect.NewRequest(&api.CreateCategoryRequest{Name: "Trip"}))
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	tripID := trip.Msg.Category.ID
	c.mustExpense(t, api.ExpenseInput{
		Description:    "Hotel",
		Date:           "2025-03-20",
		Amount:         dec("30.00"),
		PayerID:        bob,
		CategoryID:     tripID,
		Divide:         true,
		ParticipantIDs: []int64{alice},
	})

	month, err := c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("GetMonthBalances failed: %v", err)
	}
	assertAmount(t, "bob paid in default category", balanceOf(t, month.Msg.Balances, bob).Paid, "0")

	onlyTrip, err := c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 3, CategoryID: tripID}))
	if err != nil {
		t.Fatalf("GetMonthBalances(trip) failed: %v", err)
	}
	assertAmount(t, "bob paid in trip", balanceOf(t, onlyTrip.Msg.Balances, bob).Paid, "30.00")
	assertAmount(t, "alice paid in trip", balanceOf(t, onlyTrip.Msg.Balances, alice).Paid, "0")

	all, err := c.balances.GetPeriodBalances(ctx, connect.NewRequest(&api.PeriodQuery{Start: "01/03/2025", End: "31/03/2025"}))
	if err != nil {
		t.Fatalf("GetPeriodBalances failed: %v", err)
	}
	assertAmount(t, "alice paid overall", balanceOf(t, all.Msg.Balances, alice).Paid, "400.00")
	assertAmount(t, "alice owed overall", balanceOf(t, all.Msg.Balances, alice).Owed, "148.34")
	assertAmount(t, "bob paid overall", balanceOf(t, all.Msg.Balances, bob).Paid, "30.00")
}

func TestBalanceService_MonthWithoutDefaultCategory(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	marketScenario(t, c)

	resp, err := c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 4}))
	if err != nil {
		t.Fatalf("GetMonthBalances failed: %v", err)
	}
	for _, b := range resp.Msg.Balances {
		if !b.Paid.IsZero() || !b.Owed.IsZero() {
			t.Errorf("expected no activity in April, got %+v", b)
		}
	}

	list, err := c.categories.ListCategories(ctx, connect.NewRequest(&api.ListCategoriesRequest{}))
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, cat := range list.Msg.Categories {
		if cat.Name == "Month/04" {
			t.Error("reading balances must not create the month category")
		}
	}
}

func TestBalanceService_CumulativeDebt(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice, bob, carol := marketScenario(t, c)

	trip, err := c.categories.CreateCategory(ctx, connect.NewRequest(&api.CreateCategoryRequest{Name: "Trip"}))
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	// Alice owes Bob 15.00, netted against Bob's 133.33.
	c.mustExpense(t, api.ExpenseInput{
		Description:    "Hotel",
		Date:           "2025-03-20",
		Amount:         dec("30.00"),
		PayerID:        bob,
		CategoryID:     trip.Msg.Category.ID,
		Divide:         true,
		ParticipantIDs: []int64{alice},
	})
	// Bob overpays: the remaining 118.33 flips into Alice owing 81.67.
	c.mustPayment(t, api.PaymentInput{
		Date:        "2025-03-25",
		Amount:      dec("200.00"),
		PayerID:     bob,
		RecipientID: alice,
	})

	resp, err := c.balances.GetCumulativeDebt(ctx, connect.NewRequest(&api.CumulativeDebtRequest{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("GetCumulativeDebt failed: %v", err)
	}
	debts := resp.Msg.Debts
	if len(debts) != 2 {
		t.Fatalf("expected 2 debts, got %d: %+v", len(debts), debts)
	}
	if debts[0].FromID != carol || debts[0].ToID != alice {
		t.Errorf("first debt = %d->%d, want carol->alice", debts[0].FromID, debts[0].ToID)
	}
	assertAmount(t, "carol debt", debts[0].Amount, "133.33")
	if debts[1].FromID != alice || debts[1].ToID != bob {
		t.Errorf("second debt = %d->%d, want alice->bob", debts[1].FromID, debts[1].ToID)
	}
	assertAmount(t, "alice debt", debts[1].Amount, "81.67")

	before, err := c.balances.GetCumulativeDebt(ctx, connect.NewRequest(&api.CumulativeDebtRequest{Year: 2025, Month: 2}))
	if err != nil {
		t.Fatalf("GetCumulativeDebt(Feb) failed: %v", err)
	}
	if len(before.Msg.Debts) != 0 {
		t.Errorf("expected no debts before March, got %+v", before.Msg.Debts)
	}
}

func TestBalanceService_InvalidQueries(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 13}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.balances.GetMonthTransfers(ctx, connect.NewRequest(&api.MonthQuery{Year: 1999, Month: 1}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.balances.GetPeriodBalances(ctx, connect.NewRequest(&api.PeriodQuery{Start: "2025-03-31", End: "2025-03-01"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.balances.GetPeriodBalances(ctx, connect.NewRequest(&api.PeriodQuery{Start: "2025-03-01"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.balances.GetMonthBalances(ctx, connect.NewRequest(&api.MonthQuery{Year: 2025, Month: 3, CategoryID: 42}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.balances.GetCumulativeDebt(ctx, connect.NewRequest(&api.CumulativeDebtRequest{Year: 2025, Month: 0}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
