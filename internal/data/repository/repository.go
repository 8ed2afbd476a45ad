package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// TxFunc runs against a Repository whose stores all share one transaction.
type TxFunc func(ctx context.Context, tx *Repository) error

type Repository struct {
	Hotel       HotelRepository
	Booking     BookingRepository
	Wallet      WalletRepository
	Transaction TransactionRepository

	tx transactor
}

type transactor interface {
	inTx(ctx context.Context, fn TxFunc) error
}

type Option func(*pgxTransactor)

// WithLockTimeout bounds how long a transaction waits on a row lock
// before the database aborts it with a lock_not_available error.
func WithLockTimeout(d time.Duration) Option {
	return func(t *pgxTransactor) {
		t.lockTimeout = d
	}
}

// NewRepository builds the Postgres-backed stores.
func NewRepository(db database.PgxIface, log *zap.Logger, opts ...Option) *Repository {
	t := &pgxTransactor{db: db, log: log}
	for _, opt := range opts {
		opt(t)
	}

	repo := newPgxRepository(db, log)
	repo.tx = t
	return repo
}

func newPgxRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Hotel:       NewHotelRepository(q, log),
		Booking:     NewBookingRepository(q, log),
		Wallet:      NewWalletRepository(q, log),
		Transaction: NewTransactionRepository(q, log),
	}
}

// WithTx runs fn inside one database transaction, committing when fn returns
// nil and rolling back otherwise. Calling WithTx on a Repository handed to a
// TxFunc joins the enclosing transaction.
func (r *Repository) WithTx(ctx context.Context, fn TxFunc) error {
	if r.tx == nil {
		return fn(ctx, r)
	}
	return r.tx.inTx(ctx, fn)
}

type pgxTransactor struct {
	db          database.PgxIface
	log         *zap.Logger
	lockTimeout time.Duration
}

func (t *pgxTransactor) inTx(ctx context.Context, fn TxFunc) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return translateError(fmt.Errorf("begin transaction: %w", err))
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	if t.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", t.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return translateError(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	if err := fn(ctx, newPgxRepository(tx, t.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return translateError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
