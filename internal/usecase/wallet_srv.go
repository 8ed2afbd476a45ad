package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletService interface {
	Deposit(ctx context.Context, userID uuid.UUID, rawAmount json.RawMessage) (*response.DepositResponse, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error)
	// Reconcile compares every wallet balance with the signed sum of its ledger.
	Reconcile(ctx context.Context) ([]LedgerMismatch, error)
}

// LedgerMismatch is a wallet whose balance disagrees with its ledger.
type LedgerMismatch struct {
	UserID    uuid.UUID
	Balance   decimal.Decimal
	LedgerSum decimal.Decimal
}

type walletService struct {
	repo       *repository.Repository
	wallet     *Wallet
	notifier   Notifier
	minDeposit decimal.Decimal
	attempts   int
	log        *zap.Logger
}

func NewWalletService(repo *repository.Repository, wallet *Wallet, notifier Notifier, config utils.WalletConfig, attempts int, log *zap.Logger) WalletService {
	return &walletService{
		repo:       repo,
		wallet:     wallet,
		notifier:   notifier,
		minDeposit: config.MinDeposit,
		attempts:   attempts,
		log:        log.With(zap.String("service", "wallet")),
	}
}

func (s *walletService) Deposit(ctx context.Context, userID uuid.UUID, rawAmount json.RawMessage) (*response.DepositResponse, error) {
	amount, err := utils.ParseAmount(rawAmount)
	if err != nil || amount.IsNegative() {
		s.log.Warn("Deposit rejected: invalid amount",
			zap.String("user_id", userID.String()),
			zap.ByteString("amount", rawAmount),
		)
		return nil, ErrInvalidAmount
	}

	amount = utils.RoundMoney(amount)
	if amount.LessThanOrEqual(s.minDeposit) {
		s.log.Warn("Deposit rejected: below minimum",
			zap.String("user_id", userID.String()),
			zap.String("amount", utils.FormatMoney(amount)),
		)
		return nil, &MinimumDepositError{Minimum: s.minDeposit}
	}

	var entry *LedgerEntry
	err = runInTx(ctx, s.repo, s.attempts, s.log, func(ctx context.Context, tx *repository.Repository) error {
		e, err := s.wallet.Credit(ctx, tx, userID, amount, nil, entity.TransactionTypeDeposit)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		s.log.Error("Deposit failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("Deposit completed",
		zap.String("user_id", userID.String()),
		zap.String("amount", utils.FormatMoney(amount)),
		zap.String("balance", utils.FormatMoney(entry.Balance)),
	)

	s.notifier.Notify(notify.Event{
		Kind:       notify.KindWalletDeposit,
		UserID:     userID.String(),
		Amount:     utils.FormatMoney(amount),
		Balance:    utils.FormatMoney(entry.Balance),
		OccurredAt: entry.Transaction.CreatedAt,
	})

	return &response.DepositResponse{
		Detail:     "Deposit successful",
		NewBalance: utils.FormatMoney(entry.Balance),
	}, nil
}

func (s *walletService) GetWallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error) {
	profile, err := s.repo.Wallet.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	// no profile yet means nothing was ever deposited
	if profile == nil {
		return &response.WalletResponse{Balance: utils.FormatMoney(decimal.Zero)}, nil
	}

	return &response.WalletResponse{
		Balance:       utils.FormatMoney(profile.WalletBalance),
		EmailVerified: profile.EmailVerified,
	}, nil
}

func (s *walletService) Reconcile(ctx context.Context) ([]LedgerMismatch, error) {
	profiles, err := s.repo.Wallet.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}

	var mismatches []LedgerMismatch
	for _, listed := range profiles {
		mismatch, err := s.reconcileWallet(ctx, listed.UserID)
		if err != nil {
			return nil, err
		}
		if mismatch == nil {
			continue
		}
		s.log.Error("Wallet does not match ledger",
			zap.String("user_id", mismatch.UserID.String()),
			zap.String("balance", utils.FormatMoney(mismatch.Balance)),
			zap.String("ledger_sum", utils.FormatMoney(mismatch.LedgerSum)),
		)
		mismatches = append(mismatches, *mismatch)
	}

	s.log.Info("Reconciliation finished",
		zap.Int("wallets", len(profiles)),
		zap.Int("mismatches", len(mismatches)),
	)
	return mismatches, nil
}

// reconcileWallet reads one balance and its ledger sum under the wallet row
// lock. Every wallet movement takes that lock before writing either side.
func (s *walletService) reconcileWallet(ctx context.Context, userID uuid.UUID) (*LedgerMismatch, error) {
	var mismatch *LedgerMismatch

	err := runInTx(ctx, s.repo, s.attempts, s.log, func(ctx context.Context, tx *repository.Repository) error {
		mismatch = nil

		profile, err := tx.Wallet.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}
		if profile == nil {
			return nil
		}

		sum, err := tx.Transaction.SumSignedByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("sum ledger: %w", err)
		}
		if !sum.Equal(profile.WalletBalance) {
			mismatch = &LedgerMismatch{
				UserID:    userID,
				Balance:   profile.WalletBalance,
				LedgerSum: sum,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mismatch, nil
}
