package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/repository"

	"go.uber.org/zap"
)

// runInTx runs fn in a transaction and repeats it when the store reports a
// lost race. The last conflict surfaces as ErrConflict.
func runInTx(ctx context.Context, repo *repository.Repository, attempts int, log *zap.Logger, fn repository.TxFunc) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = repo.WithTx(ctx, fn)
		if !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
		log.Warn("Transaction conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
	}

	return fmt.Errorf("%w: %w", ErrConflict, err)
}
