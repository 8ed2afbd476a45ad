package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionService interface {
	// GetUserTransactions returns the caller's ledger, newest first.
	GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]response.TransactionResponse, error)
}

type transactionService struct {
	repo repository.TransactionRepository
	log  *zap.Logger
}

func NewTransactionService(repo *repository.Repository, log *zap.Logger) TransactionService {
	return &transactionService{
		repo: repo.Transaction,
		log:  log.With(zap.String("service", "transaction")),
	}
}

func (s *transactionService) GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]response.TransactionResponse, error) {
	txns, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}

	result := make([]response.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, response.TransactionToResponse(txn))
	}
	return result, nil
}
