package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile holds the per-user wallet. WalletBalance is only ever changed
// together with a matching Transaction row.
type Profile struct {
	UserID        uuid.UUID       `db:"user_id"`
	WalletBalance decimal.Decimal `db:"wallet_balance"`
	EmailVerified bool            `db:"email_verified"`
	PhoneNumber   *string         `db:"phone_number"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
