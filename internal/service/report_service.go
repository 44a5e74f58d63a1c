package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

const brDate = "02/01/2006"

// ReportService renders CSV spreadsheets of a month or a period. Files use
// ';' as separator with comma decimals so they open directly in pt-BR
// spreadsheet software.
type ReportService struct {
	ledger
	logger *slog.Logger
}

// NewReportService creates a ReportService backed by store.
func NewReportService(store storage.Store, logger *slog.Logger) *ReportService {
	return &ReportService{ledger: ledger{store: store}, logger: logger}
}

// Handler returns the HTTP routes of the reports.
func (s *ReportService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/monthly.csv", s.serveMonthly)
	mux.HandleFunc("GET /reports/balances.csv", s.serveBalances)
	return mux
}

func (s *ReportService) serveMonthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, yerr := strconv.Atoi(q.Get("year"))
	month, merr := strconv.Atoi(q.Get("month"))
	if yerr != nil || merr != nil {
		s.fail(w, r, fmt.Errorf("%w: year and month must be numbers", calculator.ErrInvalidPeriod))
		return
	}
	categoryID, err := optionalID(q.Get("category_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filename, body, err := s.MonthlyCSV(r.Context(), year, month, categoryID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeCSV(w, filename, body)
}

func (s *ReportService) serveBalances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, err := optionalID(q.Get("category_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filename, body, err := s.BalancesCSV(r.Context(), q.Get("start"), q.Get("end"), categoryID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeCSV(w, filename, body)
}

// MonthlyCSV lists the month's expenses and payments followed by the
// cumulative debt at the end of the month.
func (s *ReportService) MonthlyCSV(ctx context.Context, year, month int, categoryID int64) (string, []byte, error) {
	period, err := s.monthPeriod(ctx, year, month, categoryID)
	if err != nil {
		return "", nil, err
	}
	ym := calculator.YearMonthOf(period.Start)

	r := storage.DateRange{Start: period.Start, End: period.End}
	expenses, err := s.store.ListExpenses(ctx, r)
	if err != nil {
		return "", nil, err
	}
	payments, err := s.store.ListPayments(ctx, r)
	if err != nil {
		return "", nil, err
	}
	people, _, err := s.names(ctx)
	if err != nil {
		return "", nil, err
	}
	debts, err := s.cumulativeDebt(ctx, ym, period.Category)
	if err != nil {
		return "", nil, err
	}

	rows := [][]string{
		{"Report", ym.String()},
		{""},
		{"Expenses"},
		{"Description", "Date", "Amount", "Payer", "Split with", "Amount per person"},
	}
	for _, e := range expenses {
		if !period.Category.Matches(e.CategoryID) {
			continue
		}
		names := make([]string, len(e.Shares))
		var perPerson money.Cents
		for i, share := range e.Shares {
			names[i] = people[share.PersonID]
		}
		if len(e.Shares) > 0 {
			perPerson = e.Shares[0].Amount
		}
		rows = append(rows, []string{
			e.Description,
			e.Date.Format(brDate),
			e.Amount.PtBR(),
			people[e.PayerID],
			strings.Join(names, ", "),
			perPerson.PtBR(),
		})
	}

	rows = append(rows,
		[]string{""},
		[]string{"Payments of the month"},
		[]string{"Date", "Amount", "Payer", "Recipient", "Note"},
	)
	var paid money.Cents
	for _, p := range payments {
		if !period.Category.Matches(p.CategoryID) {
			continue
		}
		paid += p.Amount
		rows = append(rows, []string{
			p.Date.Format(brDate),
			p.Amount.PtBR(),
			people[p.PayerID],
			people[p.RecipientID],
			p.Note,
		})
	}
	rows = append(rows,
		[]string{"Total paid in month", paid.PtBR()},
		[]string{""},
		[]string{"Who owes (cumulative)"},
	)
	rows = appendTransfers(rows, debts)

	body, err := encodeCSV(rows)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("report-%02d-%d.csv", int(ym.Month), ym.Year), body, nil
}

// BalancesCSV lists the balance of every person active in the period and
// the transfers that settle them.
func (s *ReportService) BalancesCSV(ctx context.Context, start, end string, categoryID int64) (string, []byte, error) {
	period, err := s.period(ctx, start, end, categoryID)
	if err != nil {
		return "", nil, err
	}
	balances, err := s.balances(ctx, period)
	if err != nil {
		return "", nil, err
	}
	transfers := calculator.SuggestTransfers(balances)

	from, to := period.Start.Format(brDate), period.End.Format(brDate)
	rows := [][]string{
		{"Balance report", from + " to " + to},
		{""},
		{"Person", "Paid", "Owed", "Receivable", "Payable"},
	}
	for _, b := range balances {
		if !b.Active() {
			continue
		}
		rows = append(rows, []string{b.Name, b.Paid.PtBR(), b.Owed.PtBR(), b.Receivable.PtBR(), b.Payable.PtBR()})
	}
	rows = append(rows, []string{""}, []string{"Who pays whom"})
	rows = appendTransfers(rows, transfers)

	body, err := encodeCSV(rows)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("balances-%s-to-%s.csv",
		calculator.FormatDate(period.Start), calculator.FormatDate(period.End))
	return filename, body, nil
}

func appendTransfers(rows [][]string, transfers []calculator.Transfer) [][]string {
	rows = append(rows, []string{"Debtor", "Creditor", "Amount"})
	for _, t := range transfers {
		rows = append(rows, []string{t.FromName, t.ToName, t.Amount.PtBR()})
	}
	return rows
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func optionalID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: invalid category_id %q", ErrValidation, raw)
	}
	return id, nil
}

// fail writes err as a plain-text response with a status matching its
// Connect code.
func (s *ReportService) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch connect.CodeOf(toConnectError(err)) {
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeAlreadyExists, connect.CodeFailedPrecondition:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Report failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)
		return
	}
	s.logger.Warn("Report rejected", "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), status)
}
