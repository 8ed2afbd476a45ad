package usecase

import (
	"errors"
	"fmt"

	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCapacityExceeded    = errors.New("not enough rooms available for the selected dates")
	ErrOccupancyExceeded   = errors.New("too many guests for the requested number of rooms")
	ErrInsufficientFunds   = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("amount must be a non-negative number")
	ErrBelowMinimumDeposit = errors.New("deposit is below the minimum amount")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrUnauthorized        = errors.New("authentication required")
	ErrConflict            = errors.New("the request conflicted with another update, please retry")
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

type CapacityError struct {
	Available int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d room(s) available, %d requested", e.Available, e.Requested)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

type OccupancyError struct {
	Guests   int
	Capacity int
}

func (e *OccupancyError) Error() string {
	return fmt.Sprintf("%d guest(s) exceed the capacity of %d for the requested rooms", e.Guests, e.Capacity)
}

func (e *OccupancyError) Unwrap() error { return ErrOccupancyExceeded }

type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: %s available, %s required",
		utils.FormatMoney(e.Balance), utils.FormatMoney(e.Required))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

type MinimumDepositError struct {
	Minimum decimal.Decimal
}

func (e *MinimumDepositError) Error() string {
	return fmt.Sprintf("deposit must be greater than %s", utils.FormatMoney(e.Minimum))
}

func (e *MinimumDepositError) Unwrap() error { return ErrBelowMinimumDeposit }

var clientErrors = []error{
	ErrValidation,
	ErrCapacityExceeded,
	ErrOccupancyExceeded,
	ErrInsufficientFunds,
	ErrInvalidAmount,
	ErrBelowMinimumDeposit,
	ErrNotFound,
	ErrAlreadyCancelled,
	ErrUnauthorized,
	ErrConflict,
}

// IsClientError reports whether err belongs to the request rather than the server.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsRetryable reports whether the whole operation may be attempted again.
func IsRetryable(err error) bool {
	return errors.Is(err, repository.ErrConflict) || errors.Is(err, ErrConflict)
}
