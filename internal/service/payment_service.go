package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

// PaymentService implements the Connect PaymentService.
type PaymentService struct {
	ledger
	logger *slog.Logger
}

// NewPaymentService creates a PaymentService backed by store.
func NewPaymentService(store storage.Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{ledger: ledger{store: store}, logger: logger}
}

// CreatePayment records a direct settlement between two people.
func (s *PaymentService) CreatePayment(ctx context.Context, req *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.CreatePaymentResponse], error) {
	s.logger.Info("CreatePayment request received",
		"payer_id", req.Msg.PayerID,
		"recipient_id", req.Msg.RecipientID,
	)

	payment, err := s.buildPayment(ctx, 0, &req.Msg.PaymentInput)
	if err != nil {
		s.logger.Warn("CreatePayment rejected", "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("CreatePayment failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Payment created", "payment_id", payment.ID, "amount", payment.Amount.String())
	out, err := s.present(ctx, payment)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreatePaymentResponse{Payment: out}), nil
}

// ListPayments returns payments in an optional date range together with
// their total.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	r, err := optionalRange(req.Msg.Start, req.Msg.End)
	if err != nil {
		return nil, toConnectError(err)
	}

	payments, err := s.store.ListPayments(ctx, r)
	if err != nil {
		s.logger.Error("ListPayments failed", "error", err)
		return nil, toConnectError(err)
	}
	people, categories, err := s.names(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	var total money.Cents
	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p, people, categories)
		total += p.Amount
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out, Total: total.Decimal()}), nil
}

// UpdatePayment rewrites a payment; both affected months must be open.
func (s *PaymentService) UpdatePayment(ctx context.Context, req *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.UpdatePaymentResponse], error) {
	current, err := s.store.GetPayment(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ensureMonthOpen(ctx, current.Date, current.CategoryID); err != nil {
		return nil, toConnectError(err)
	}

	payment, err := s.buildPayment(ctx, current.ID, &req.Msg.PaymentInput)
	if err != nil {
		s.logger.Warn("UpdatePayment rejected", "payment_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		s.logger.Error("UpdatePayment failed", "payment_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Payment updated", "payment_id", payment.ID)
	out, err := s.present(ctx, payment)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdatePaymentResponse{Payment: out}), nil
}

// DeletePayment removes a payment from an open month.
func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	payment, err := s.store.GetPayment(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ensureMonthOpen(ctx, payment.Date, payment.CategoryID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeletePayment(ctx, payment.ID); err != nil {
		s.logger.Error("DeletePayment failed", "payment_id", payment.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Payment deleted", "payment_id", payment.ID)
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

func (s *PaymentService) buildPayment(ctx context.Context, id int64, in *api.PaymentInput) (*models.Payment, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := calculator.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if in.PayerID == 0 || in.RecipientID == 0 {
		return nil, fmt.Errorf("%w: payer and recipient are required", ErrValidation)
	}
	if in.PayerID == in.RecipientID {
		return nil, fmt.Errorf("%w: payer and recipient must differ", ErrValidation)
	}
	if err := s.requirePeople(ctx, in.PayerID, in.RecipientID); err != nil {
		return nil, err
	}

	category, err := s.lookupCategory(ctx, in.CategoryID, date)
	if err != nil {
		return nil, err
	}
	if category != nil {
		if err := s.ensureMonthOpen(ctx, date, category.ID); err != nil {
			return nil, err
		}
	}
	if category, err = s.ensureCategory(ctx, category, date); err != nil {
		return nil, err
	}

	return &models.Payment{
		ID:          id,
		Date:        date,
		Amount:      amount,
		PayerID:     in.PayerID,
		RecipientID: in.RecipientID,
		CategoryID:  category.ID,
		Note:        strings.TrimSpace(in.Note),
	}, nil
}

func (s *PaymentService) present(ctx context.Context, payment *models.Payment) (*api.Payment, error) {
	people, categories, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	return toAPIPayment(payment, people, categories), nil
}
