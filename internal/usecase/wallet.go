package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerEntry is the outcome of one wallet movement.
type LedgerEntry struct {
	Transaction *entity.Transaction
	Balance     decimal.Decimal
}

// Wallet moves money between a user's balance and the ledger. Every method
// must run inside a transaction opened by the caller; the profile row is
// locked for the rest of that transaction.
type Wallet struct {
	now func() time.Time
	log *zap.Logger
}

func NewWallet(log *zap.Logger, now func() time.Time) *Wallet {
	return &Wallet{
		now: now,
		log: log.With(zap.String("component", "wallet")),
	}
}

// Debit takes amount from the balance as a booking payment.
func (w *Wallet) Debit(ctx context.Context, tx *repository.Repository, userID uuid.UUID, amount decimal.Decimal, bookingID uuid.UUID) (*LedgerEntry, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	profile, err := tx.Wallet.GetOrCreateForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	if amount.GreaterThan(profile.WalletBalance) {
		return nil, &InsufficientFundsError{Balance: profile.WalletBalance, Required: amount}
	}

	return w.record(ctx, tx, profile, profile.WalletBalance.Sub(amount), amount, entity.TransactionTypeBookingPayment, &bookingID)
}

// Credit adds amount to the balance as a deposit or refund.
func (w *Wallet) Credit(ctx context.Context, tx *repository.Repository, userID uuid.UUID, amount decimal.Decimal, bookingID *uuid.UUID, kind entity.TransactionType) (*LedgerEntry, error) {
	if !kind.Valid() || kind == entity.TransactionTypeBookingPayment {
		return nil, fmt.Errorf("credit: unsupported transaction type %q", kind)
	}
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	profile, err := tx.Wallet.GetOrCreateForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	return w.record(ctx, tx, profile, profile.WalletBalance.Add(amount), amount, kind, bookingID)
}

func (w *Wallet) record(ctx context.Context, tx *repository.Repository, profile *entity.Profile, balance, amount decimal.Decimal, kind entity.TransactionType, bookingID *uuid.UUID) (*LedgerEntry, error) {
	if err := tx.Wallet.UpdateBalance(ctx, profile.UserID, balance); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	txn := &entity.Transaction{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: w.now().UTC()},
		UserID:     profile.UserID,
		BookingID:  bookingID,
		Amount:     amount,
		Type:       kind,
	}
	if err := tx.Transaction.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}

	w.log.Debug("Wallet updated",
		zap.String("user_id", profile.UserID.String()),
		zap.String("type", string(kind)),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", balance.StringFixed(2)),
	)

	return &LedgerEntry{Transaction: txn, Balance: balance}, nil
}
