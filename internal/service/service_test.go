package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
	"github.com/mmynk/splitledger/pkg/logging"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUserID(ctx, "test-user"), req)
		}
	}
}

type testClients struct {
	people     apiconnect.PersonServiceClient
	categories apiconnect.CategoryServiceClient
	expenses   apiconnect.ExpenseServiceClient
	payments   apiconnect.PaymentServiceClient
	closures   apiconnect.ClosureServiceClient
	balances   apiconnect.BalanceServiceClient
	baseURL    string
}

// setupTestServer serves every ledger service over httptest backed by a
// temp-file SQLite database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := logging.Discard()
	opts := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewPersonServiceHandler(NewPersonService(store, logger), opts))
	mux.Handle(apiconnect.NewCategoryServiceHandler(NewCategoryService(store, logger), opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, logger), opts))
	mux.Handle(apiconnect.NewPaymentServiceHandler(NewPaymentService(store, logger), opts))
	mux.Handle(apiconnect.NewClosureServiceHandler(NewClosureService(store, logger), opts))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, logger), opts))
	mux.Handle("/reports/", NewReportService(store, logger).Handler())

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	client := http.DefaultClient
	return &testClients{
		people:     apiconnect.NewPersonServiceClient(client, server.URL),
		categories: apiconnect.NewCategoryServiceClient(client, server.URL),
		expenses:   apiconnect.NewExpenseServiceClient(client, server.URL),
		payments:   apiconnect.NewPaymentServiceClient(client, server.URL),
		closures:   apiconnect.NewClosureServiceClient(client, server.URL),
		balances:   apiconnect.NewBalanceServiceClient(client, server.URL),
		baseURL:    server.URL,
	}
}

func (c *testClients) mustPerson(t *testing.T, name string) int64 {
	t.Helper()
	resp, err := c.people.CreatePerson(context.Background(), connect.NewRequest(&api.CreatePersonRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreatePerson(%q) failed: %v", name, err)
	}
	return resp.Msg.Person.ID
}

func (c *testClients) mustExpense(t *testing.T, in api.ExpenseInput) *api.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{ExpenseInput: in}))
	if err != nil {
		t.Fatalf("CreateExpense(%q) failed: %v", in.Description, err)
	}
	return resp.Msg.Expense
}

func (c *testClients) mustPayment(t *testing.T, in api.PaymentInput) *api.Payment {
	t.Helper()
	resp, err := c.payments.CreatePayment(context.Background(), connect.NewRequest(&api.CreatePaymentRequest{PaymentInput: in}))
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	return resp.Msg.Payment
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", what, got.StringFixed(2), want)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code = %v, want %v (error: %v)", got, want, err)
	}
}
