package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// PersonServiceName is the fully-qualified name of the PersonService.
	PersonServiceName   = "ledger.v1.PersonService"
	// CategoryServiceName is the fully-qualified name of the CategoryService.
	CategoryServiceName = "ledger.v1.CategoryService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService.
	ExpenseServiceName  = "ledger.v1.ExpenseService"
	// PaymentServiceName is the fully-qualified name of the PaymentService.
	PaymentServiceName  = "ledger.v1.PaymentService"
	// ClosureServiceName is the fully-qualified name of the ClosureService.
	ClosureServiceName  = "ledger.v1.ClosureService"
)

const (
	PersonServiceCreatePersonProcedure     = "/" + PersonServiceName + "/CreatePerson"
	PersonServiceListPeopleProcedure       = "/" + PersonServiceName + "/ListPeople"
	PersonServiceUpdatePersonProcedure     = "/" + PersonServiceName + "/UpdatePerson"
	PersonServiceDeletePersonProcedure     = "/" + PersonServiceName + "/DeletePerson"
	CategoryServiceCreateCategoryProcedure = "/" + CategoryServiceName + "/CreateCategory"
	CategoryServiceListCategoriesProcedure = "/" + CategoryServiceName + "/ListCategories"
	CategoryServiceUpdateCategoryProcedure = "/" + CategoryServiceName + "/UpdateCategory"
	CategoryServiceDeleteCategoryProcedure = "/" + CategoryServiceName + "/DeleteCategory"
	ExpenseServiceCreateExpenseProcedure   = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceListExpensesProcedure    = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure   = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure   = "/" + ExpenseServiceName + "/DeleteExpense"
	PaymentServiceCreatePaymentProcedure   = "/" + PaymentServiceName + "/CreatePayment"
	PaymentServiceListPaymentsProcedure    = "/" + PaymentServiceName + "/ListPayments"
	PaymentServiceUpdatePaymentProcedure   = "/" + PaymentServiceName + "/UpdatePayment"
	PaymentServiceDeletePaymentProcedure   = "/" + PaymentServiceName + "/DeletePayment"
	ClosureServiceCloseMonthProcedure      = "/" + ClosureServiceName + "/CloseMonth"
	ClosureServiceListClosuresProcedure    = "/" + ClosureServiceName + "/ListClosures"
	ClosureServiceReopenMonthProcedure     = "/" + ClosureServiceName + "/ReopenMonth"
)

// PersonServiceHandler is implemented by the server side of the PersonService.
// Manages the people who share expenses.
type PersonServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

// NewPersonServiceHandler builds an HTTP handler for the PersonService. It returns the
// path to mount the handler on.
func NewPersonServiceHandler(svc PersonServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + PersonServiceName + "/", serviceMux{
		PersonServiceCreatePersonProcedure: unaryHandler(PersonServiceCreatePersonProcedure, svc.CreatePerson, opts),
		PersonServiceListPeopleProcedure:   unaryHandler(PersonServiceListPeopleProcedure, svc.ListPeople, opts),
		PersonServiceUpdatePersonProcedure: unaryHandler(PersonServiceUpdatePersonProcedure, svc.UpdatePerson, opts),
		PersonServiceDeletePersonProcedure: unaryHandler(PersonServiceDeletePersonProcedure, svc.DeletePerson, opts),
	}
}

// PersonServiceClient is a client for the PersonService.
type PersonServiceClient interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

type personServiceClient struct {
	createPerson *connect.Client[api.CreatePersonRequest, api.CreatePersonResponse]
	listPeople   *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	updatePerson *connect.Client[api.UpdatePersonRequest, api.UpdatePersonResponse]
	deletePerson *connect.Client[api.DeletePersonRequest, api.DeletePersonResponse]
}

// NewPersonServiceClient constructs a client for the PersonService served at baseURL.
func NewPersonServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PersonServiceClient {
	return &personServiceClient{
		createPerson: unaryClient[api.CreatePersonRequest, api.CreatePersonResponse](httpClient, baseURL, PersonServiceCreatePersonProcedure, opts),
		listPeople:   unaryClient[api.ListPeopleRequest, api.ListPeopleResponse](httpClient, baseURL, PersonServiceListPeopleProcedure, opts),
		updatePerson: unaryClient[api.UpdatePersonRequest, api.UpdatePersonResponse](httpClient, baseURL, PersonServiceUpdatePersonProcedure, opts),
		deletePerson: unaryClient[api.DeletePersonRequest, api.DeletePersonResponse](httpClient, baseURL, PersonServiceDeletePersonProcedure, opts),
	}
}

func (c *personServiceClient) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *personServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *personServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	return c.updatePerson.CallUnary(ctx, req)
}

func (c *personServiceClient) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

// CategoryServiceHandler is implemented by the server side of the CategoryService.
// Manages expense categories.
type CategoryServiceHandler interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceHandler builds an HTTP handler for the CategoryService. It returns the
// path to mount the handler on.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + CategoryServiceName + "/", serviceMux{
		CategoryServiceCreateCategoryProcedure: unaryHandler(CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts),
		CategoryServiceListCategoriesProcedure: unaryHandler(CategoryServiceListCategoriesProcedure, svc.ListCategories, opts),
		CategoryServiceUpdateCategoryProcedure: unaryHandler(CategoryServiceUpdateCategoryProcedure, svc.UpdateCategory, opts),
		CategoryServiceDeleteCategoryProcedure: unaryHandler(CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts),
	}
}

// CategoryServiceClient is a client for the CategoryService.
type CategoryServiceClient interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

type categoryServiceClient struct {
	createCategory *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	updateCategory *connect.Client[api.UpdateCategoryRequest, api.UpdateCategoryResponse]
	deleteCategory *connect.Client[api.DeleteCategoryRequest, api.DeleteCategoryResponse]
}

// NewCategoryServiceClient constructs a client for the CategoryService served at baseURL.
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CategoryServiceClient {
	return &categoryServiceClient{
		createCategory: unaryClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL, CategoryServiceCreateCategoryProcedure, opts),
		listCategories: unaryClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL, CategoryServiceListCategoriesProcedure, opts),
		updateCategory: unaryClient[api.UpdateCategoryRequest, api.UpdateCategoryResponse](httpClient, baseURL, CategoryServiceUpdateCategoryProcedure, opts),
		deleteCategory: unaryClient[api.DeleteCategoryRequest, api.DeleteCategoryResponse](httpClient, baseURL, CategoryServiceDeleteCategoryProcedure, opts),
	}
}

func (c *categoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *categoryServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	return c.updateCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}

// ExpenseServiceHandler is implemented by the server side of the ExpenseService.
// Records shared expenses and their splits.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for the ExpenseService. It returns the
// path to mount the handler on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + ExpenseServiceName + "/", serviceMux{
		ExpenseServiceCreateExpenseProcedure: unaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts),
		ExpenseServiceListExpensesProcedure:  unaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts),
		ExpenseServiceUpdateExpenseProcedure: unaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts),
		ExpenseServiceDeleteExpenseProcedure: unaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts),
	}
}

// ExpenseServiceClient is a client for the ExpenseService.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

type expenseServiceClient struct {
	createExpense *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	updateExpense *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
}

// NewExpenseServiceClient constructs a client for the ExpenseService served at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	return &expenseServiceClient{
		createExpense: unaryClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL, ExpenseServiceCreateExpenseProcedure, opts),
		listExpenses:  unaryClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL, ExpenseServiceListExpensesProcedure, opts),
		updateExpense: unaryClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL, ExpenseServiceUpdateExpenseProcedure, opts),
		deleteExpense: unaryClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL, ExpenseServiceDeleteExpenseProcedure, opts),
	}
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// PaymentServiceHandler is implemented by the server side of the PaymentService.
// Records payments between people.
type PaymentServiceHandler interface {
	CreatePayment(context.Context, *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.CreatePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	UpdatePayment(context.Context, *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.UpdatePaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler for the PaymentService. It returns the
// path to mount the handler on.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + PaymentServiceName + "/", serviceMux{
		PaymentServiceCreatePaymentProcedure: unaryHandler(PaymentServiceCreatePaymentProcedure, svc.CreatePayment, opts),
		PaymentServiceListPaymentsProcedure:  unaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts),
		PaymentServiceUpdatePaymentProcedure: unaryHandler(PaymentServiceUpdatePaymentProcedure, svc.UpdatePayment, opts),
		PaymentServiceDeletePaymentProcedure: unaryHandler(PaymentServiceDeletePaymentProcedure, svc.DeletePayment, opts),
	}
}

// PaymentServiceClient is a client for the PaymentService.
type PaymentServiceClient interface {
	CreatePayment(context.Context, *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.CreatePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	UpdatePayment(context.Context, *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.UpdatePaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
}

type paymentServiceClient struct {
	createPayment *connect.Client[api.CreatePaymentRequest, api.CreatePaymentResponse]
	listPayments  *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	updatePayment *connect.Client[api.UpdatePaymentRequest, api.UpdatePaymentResponse]
	deletePayment *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
}

// NewPaymentServiceClient constructs a client for the PaymentService served at baseURL.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	return &paymentServiceClient{
		createPayment: unaryClient[api.CreatePaymentRequest, api.CreatePaymentResponse](httpClient, baseURL, PaymentServiceCreatePaymentProcedure, opts),
		listPayments:  unaryClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL, PaymentServiceListPaymentsProcedure, opts),
		updatePayment: unaryClient[api.UpdatePaymentRequest, api.UpdatePaymentResponse](httpClient, baseURL, PaymentServiceUpdatePaymentProcedure, opts),
		deletePayment: unaryClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL, PaymentServiceDeletePaymentProcedure, opts),
	}
}

func (c *paymentServiceClient) CreatePayment(ctx context.Context, req *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.CreatePaymentResponse], error) {
	return c.createPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *paymentServiceClient) UpdatePayment(ctx context.Context, req *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.UpdatePaymentResponse], error) {
	return c.updatePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

// ClosureServiceHandler is implemented by the server side of the ClosureService.
// Locks and unlocks months per category.
type ClosureServiceHandler interface {
	CloseMonth(context.Context, *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error)
	ListClosures(context.Context, *connect.Request[api.ListClosuresRequest]) (*connect.Response[api.ListClosuresResponse], error)
	ReopenMonth(context.Context, *connect.Request[api.ReopenMonthRequest]) (*connect.Response[api.ReopenMonthResponse], error)
}

// NewClosureServiceHandler builds an HTTP handler for the ClosureService. It returns the
// path to mount the handler on.
func NewClosureServiceHandler(svc ClosureServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + ClosureServiceName + "/", serviceMux{
		ClosureServiceCloseMonthProcedure:   unaryHandler(ClosureServiceCloseMonthProcedure, svc.CloseMonth, opts),
		ClosureServiceListClosuresProcedure: unaryHandler(ClosureServiceListClosuresProcedure, svc.ListClosures, opts),
		ClosureServiceReopenMonthProcedure:  unaryHandler(ClosureServiceReopenMonthProcedure, svc.ReopenMonth, opts),
	}
}

// ClosureServiceClient is a client for the ClosureService.
type ClosureServiceClient interface {
	CloseMonth(context.Context, *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error)
	ListClosures(context.Context, *connect.Request[api.ListClosuresRequest]) (*connect.Response[api.ListClosuresResponse], error)
	ReopenMonth(context.Context, *connect.Request[api.ReopenMonthRequest]) (*connect.Response[api.ReopenMonthResponse], error)
}

type closureServiceClient struct {
	closeMonth   *connect.Client[api.CloseMonthRequest, api.CloseMonthResponse]
	listClosures *connect.Client[api.ListClosuresRequest, api.ListClosuresResponse]
	reopenMonth  *connect.Client[api.ReopenMonthRequest, api.ReopenMonthResponse]
}

// NewClosureServiceClient constructs a client for the ClosureService served at baseURL.
func NewClosureServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ClosureServiceClient {
	return &closureServiceClient{
		closeMonth:   unaryClient[api.CloseMonthRequest, api.CloseMonthResponse](httpClient, baseURL, ClosureServiceCloseMonthProcedure, opts),
		listClosures: unaryClient[api.ListClosuresRequest, api.ListClosuresResponse](httpClient, baseURL, ClosureServiceListClosuresProcedure, opts),
		reopenMonth:  unaryClient[api.ReopenMonthRequest, api.ReopenMonthResponse](httpClient, baseURL, ClosureServiceReopenMonthProcedure, opts),
	}
}

func (c *closureServiceClient) CloseMonth(ctx context.Context, req *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error) {
	return c.closeMonth.CallUnary(ctx, req)
}

func (c *closureServiceClient) ListClosures(ctx context.Context, req *connect.Request[api.ListClosuresRequest]) (*connect.Response[api.ListClosuresResponse], error) {
	return c.listClosures.CallUnary(ctx, req)
}

func (c *closureServiceClient) ReopenMonth(ctx context.Context, req *connect.Request[api.ReopenMonthRequest]) (*connect.Response[api.ReopenMonthResponse], error) {
	return c.reopenMonth.CallUnary(ctx, req)
}
