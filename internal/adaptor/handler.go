package adaptor

import (
	"errors"
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Booking     *BookingHandler
	Search      *SearchHandler
	Wallet      *WalletHandler
	Transaction *TransactionHandler
	Health      *HealthHandler
}

func NewHandler(service *usecase.Service, health HealthChecker, log *zap.Logger) *Handler {
	return &Handler{
		Booking:     NewBookingHandler(service.Booking, log),
		Search:      NewSearchHandler(service.Search, log),
		Wallet:      NewWalletHandler(service.Wallet, log),
		Transaction: NewTransactionHandler(service.Transaction, log),
		Health:      NewHealthHandler(health, log),
	}
}

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, usecase.ErrConflict.Error())

	case usecase.IsClientError(err):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, clientMessage(err), nil)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// clientMessage prefers the detailed text of the structured errors.
func clientMessage(err error) string {
	var (
		capacityErr  *usecase.CapacityError
		occupancyErr *usecase.OccupancyError
		fundsErr     *usecase.InsufficientFundsError
		minimumErr   *usecase.MinimumDepositError
	)
	switch {
	case errors.As(err, &capacityErr):
		return capacityErr.Error()
	case errors.As(err, &occupancyErr):
		return occupancyErr.Error()
	case errors.As(err, &fundsErr):
		return fundsErr.Error()
	case errors.As(err, &minimumErr):
		return minimumErr.Error()
	case errors.Is(err, usecase.ErrInvalidAmount):
		return usecase.ErrInvalidAmount.Error()
	case errors.Is(err, usecase.ErrAlreadyCancelled):
		return usecase.ErrAlreadyCancelled.Error()
	}
	return err.Error()
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
