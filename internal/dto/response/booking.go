package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type BookingCreatedResponse struct {
	Detail    string `json:"detail"`
	BookingID string `json:"booking_id"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type BookingResponse struct {
	ID         string               `json:"id"`
	HotelID    string               `json:"hotel"`
	HotelName  string               `json:"hotel_name,omitempty"`
	CheckIn    string               `json:"check_in"`
	CheckOut   string               `json:"check_out"`
	Nights     int                  `json:"nights"`
	Adults     int                  `json:"adults"`
	Children   int                  `json:"children"`
	Rooms      int                  `json:"rooms"`
	TotalPrice string               `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, hotelName string) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		HotelID:    booking.HotelID.String(),
		HotelName:  hotelName,
		CheckIn:    utils.FormatDate(booking.CheckIn),
		CheckOut:   utils.FormatDate(booking.CheckOut),
		Nights:     booking.Nights(),
		Adults:     booking.Adults,
		Children:   booking.Children,
		Rooms:      booking.Rooms,
		TotalPrice: utils.FormatMoney(booking.TotalPrice),
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}
