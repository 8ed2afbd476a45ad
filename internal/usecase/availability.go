package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/shopspring/decimal"
)

// Availability is what a hotel can offer for a stay that passed the check.
type Availability struct {
	AvailableRooms  int
	CapacityPerRoom int
	PricePerNight   decimal.Decimal
}

// CheckAvailability decides whether hotel can host stay given the rooms
// already committed to overlapping active bookings. Capacity is checked
// before occupancy.
func CheckAvailability(hotel *entity.Hotel, bookedRooms int, stay Stay) (Availability, error) {
	available := hotel.TotalRooms - bookedRooms
	if available < 0 {
		available = 0
	}

	if available < stay.Rooms {
		return Availability{}, &CapacityError{Available: available, Requested: stay.Rooms}
	}

	capacity := stay.Rooms * hotel.CapacityPerRoom
	if stay.Guests() > capacity {
		return Availability{}, &OccupancyError{Guests: stay.Guests(), Capacity: capacity}
	}

	return Availability{
		AvailableRooms:  available,
		CapacityPerRoom: hotel.CapacityPerRoom,
		PricePerNight:   hotel.PricePerNight,
	}, nil
}

// StayPrice is price_per_night × rooms × nights, rounded half-to-even to cents.
func StayPrice(pricePerNight decimal.Decimal, stay Stay) decimal.Decimal {
	total := pricePerNight.
		Mul(decimal.NewFromInt(int64(stay.Rooms))).
		Mul(decimal.NewFromInt(int64(stay.Nights())))
	return utils.RoundMoney(total)
}

// AvailabilityCalculator recounts booked rooms from the store. Pass the
// transaction-scoped repository when the result guards a write.
type AvailabilityCalculator struct{}

func (AvailabilityCalculator) Check(ctx context.Context, repo *repository.Repository, hotel *entity.Hotel, stay Stay) (Availability, error) {
	booked, err := repo.Booking.SumBookedRooms(ctx, hotel.ID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return Availability{}, fmt.Errorf("count booked rooms: %w", err)
	}
	return CheckAvailability(hotel, booked, stay)
}
