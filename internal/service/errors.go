package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	// ErrMonthClosed is returned when a change touches a closed month.
	ErrMonthClosed = errors.New("month is closed")

	// ErrValidation is returned for malformed or missing request fields.
	ErrValidation = errors.New("validation failed")
)

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, calculator.ErrInvalidSplit),
		errors.Is(err, calculator.ErrInvalidPeriod),
		errors.Is(err, calculator.ErrUnknownPerson),
		errors.Is(err, calculator.ErrUnknownExpense):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ErrMonthClosed), errors.Is(err, storage.ErrInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
