package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletRepository stores the per-user profile that carries the wallet balance.
type WalletRepository interface {
	// GetOrCreateForUpdate returns the profile locked for the rest of the
	// transaction, creating an empty one on first use.
	GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	// FindByUserIDForUpdate is FindByUserID holding the row lock, so the
	// balance cannot move until the transaction ends.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpdateBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error
	ListAll(ctx context.Context) ([]*entity.Profile, error)
}

type walletRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewWalletRepository(db database.Querier, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

const profileColumns = `user_id, wallet_balance, email_verified, phone_number, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var profile entity.Profile
	err := row.Scan(
		&profile.UserID,
		&profile.WalletBalance,
		&profile.EmailVerified,
		&profile.PhoneNumber,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *walletRepository) GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	now := time.Now().UTC()
	insert := `
		INSERT INTO profiles (user_id, wallet_balance, email_verified, created_at, updated_at)
		VALUES ($1, 0, FALSE, $2, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, userID, now); err != nil {
		r.log.Error("Failed to create profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("create profile for user %s: %w", userID, err))
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 FOR UPDATE`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.log.Error("Failed to lock profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("lock profile for user %s: %w", userID, err))
	}

	return profile, nil
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return r.findByUserID(ctx, userID, "")
}

func (r *walletRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return r.findByUserID(ctx, userID, " FOR UPDATE")
}

func (r *walletRepository) findByUserID(ctx context.Context, userID uuid.UUID, lock string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1` + lock

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("find profile for user %s: %w", userID, err))
	}

	return profile, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE profiles
		SET wallet_balance = $1, updated_at = $2
		WHERE user_id = $3
	`

	tag, err := r.db.Exec(ctx, query, balance, time.Now().UTC(), userID)
	if err != nil {
		r.log.Error("Failed to update wallet balance",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return translateError(fmt.Errorf("update balance for user %s: %w", userID, err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update balance: profile for user %s not found", userID)
	}

	return nil
}

func (r *walletRepository) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY user_id`)
	if err != nil {
		r.log.Error("Failed to list profiles", zap.Error(err))
		return nil, translateError(fmt.Errorf("list profiles: %w", err))
	}
	defer rows.Close()

	profiles := make([]*entity.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}
