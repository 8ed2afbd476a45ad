package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionRepository is append-only: rows are inserted and read, never changed.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	// FindByUserID returns the user's ledger, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error)
	// SumSignedByUserID adds deposits and refunds and subtracts booking payments.
	SumSignedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type transactionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTransactionRepository(db database.Querier, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

const transactionColumns = `id, user_id, booking_id, amount, transaction_type, created_at`

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.BookingID,
		txn.Amount,
		txn.Type,
		txn.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to record transaction",
			zap.Error(err),
			zap.String("user_id", txn.UserID.String()),
			zap.String("type", string(txn.Type)),
		)
		return translateError(fmt.Errorf("record %s transaction: %w", txn.Type, err))
	}

	return nil
}

func (r *transactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	txns, err := r.query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find transactions by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find transactions for user %s: %w", userID, err)
	}
	return txns, nil
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE booking_id = $1
		ORDER BY created_at, id
	`
	txns, err := r.query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find transactions by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find transactions for booking %s: %w", bookingID, err)
	}
	return txns, nil
}

func (r *transactionRepository) SumSignedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN transaction_type = $2 THEN -amount ELSE amount END), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID, entity.TransactionTypeBookingPayment).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum ledger",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return decimal.Zero, translateError(fmt.Errorf("sum ledger for user %s: %w", userID, err))
	}

	return sum, nil
}

func (r *transactionRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	txns := make([]*entity.Transaction, 0)
	for rows.Next() {
		var txn entity.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.BookingID,
			&txn.Amount,
			&txn.Type,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, &txn)
	}
	return txns, rows.Err()
}
