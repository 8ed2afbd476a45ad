// Package notify delivers best-effort notices about wallet and booking
// activity. Delivery happens after the financial transaction commits and
// never reports failure back to the request.
package notify

import "time"

type Kind string

const (
	KindBookingCreated   Kind = "booking.created"
	KindBookingCancelled Kind = "booking.cancelled"
	KindWalletDeposit    Kind = "wallet.deposit"
)

// Event is the message handed to a Sink. Amounts are fixed two-digit strings.
type Event struct {
	Kind       Kind      `json:"kind"`
	UserID     string    `json:"user_id"`
	BookingID  string    `json:"booking_id,omitempty"`
	HotelID    string    `json:"hotel_id,omitempty"`
	HotelName  string    `json:"hotel_name,omitempty"`
	CheckIn    string    `json:"check_in,omitempty"`
	CheckOut   string    `json:"check_out,omitempty"`
	Amount     string    `json:"amount"`
	Balance    string    `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Subject is the headline a mail relay uses for the notice.
func (e Event) Subject() string {
	switch e.Kind {
	case KindBookingCreated:
		return "Booking Confirmation"
	case KindBookingCancelled:
		return "Booking Cancellation"
	case KindWalletDeposit:
		return "Deposit Successful"
	default:
		return string(e.Kind)
	}
}
