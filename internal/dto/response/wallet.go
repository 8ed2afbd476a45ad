package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type DepositResponse struct {
	Detail     string `json:"detail"`
	NewBalance string `json:"new_balance"`
}

type WalletResponse struct {
	Balance       string `json:"balance"`
	EmailVerified bool   `json:"email_verified"`
}

type TransactionResponse struct {
	ID        string                 `json:"id"`
	BookingID *string                `json:"booking_id"`
	Amount    string                 `json:"amount"`
	Type      entity.TransactionType `json:"transaction_type"`
	CreatedAt time.Time              `json:"created_at"`
}

func TransactionToResponse(txn *entity.Transaction) TransactionResponse {
	res := TransactionResponse{
		ID:        txn.ID.String(),
		Amount:    utils.FormatMoney(txn.Amount),
		Type:      txn.Type,
		CreatedAt: txn.CreatedAt,
	}
	if txn.BookingID != nil {
		id := txn.BookingID.String()
		res.BookingID = &id
	}
	return res
}
