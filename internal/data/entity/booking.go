package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	UserID     uuid.UUID       `db:"user_id"`
	HotelID    uuid.UUID       `db:"hotel_id"`
	CheckIn    time.Time       `db:"check_in"`
	CheckOut   time.Time       `db:"check_out"`
	Adults     int             `db:"adults"`
	Children   int             `db:"children"`
	Rooms      int             `db:"rooms"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     BookingStatus   `db:"status"`
}

// Nights is the number of whole days between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusBooked
}
