package response

import (
	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type HotelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// SearchResult is one hotel with enough capacity for the requested stay.
type SearchResult struct {
	Hotel           HotelSummary `json:"hotel"`
	AvailableRooms  int          `json:"available_rooms"`
	CapacityPerRoom int          `json:"capacity_per_room"`
	PricePerNight   string       `json:"price_per_night"`
	TotalPrice      string       `json:"total_price"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

func HotelToSummary(hotel *entity.Hotel) HotelSummary {
	return HotelSummary{
		ID:          hotel.ID.String(),
		Name:        hotel.Name,
		Address:     hotel.Address,
		Location:    hotel.Location,
		Description: hotel.Description,
	}
}

type HotelResponse struct {
	HotelSummary
	TotalRooms      int    `json:"total_rooms"`
	CapacityPerRoom int    `json:"capacity_per_room"`
	PricePerNight   string `json:"price_per_night"`
}

func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	return HotelResponse{
		HotelSummary:    HotelToSummary(hotel),
		TotalRooms:      hotel.TotalRooms,
		CapacityPerRoom: hotel.CapacityPerRoom,
		PricePerNight:   utils.FormatMoney(hotel.PricePerNight),
	}
}
