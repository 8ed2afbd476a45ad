package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit        TransactionType = "Deposit"
	TransactionTypeBookingPayment TransactionType = "Booking Payment"
	TransactionTypeRefund         TransactionType = "Refund"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeBookingPayment, TransactionTypeRefund:
		return true
	}
	return false
}

// Transaction is an append-only ledger line. Amount is always an unsigned
// magnitude; the sign comes from Type.
type Transaction struct {
	BaseSimple
	UserID    uuid.UUID       `db:"user_id"`
	BookingID *uuid.UUID      `db:"booking_id"`
	Amount    decimal.Decimal `db:"amount"`
	Type      TransactionType `db:"transaction_type"`
}

func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeBookingPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}
