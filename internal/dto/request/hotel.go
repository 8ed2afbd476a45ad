package request

type CreateHotelRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Address         string `json:"address" validate:"max=255"`
	Location        string `json:"location" validate:"required,max=100"`
	Description     string `json:"description"`
	TotalRooms      int    `json:"total_rooms" validate:"min=0"`
	CapacityPerRoom int    `json:"capacity_per_room" validate:"min=1,max=100"`
	PricePerNight   string `json:"price_per_night" validate:"required,numeric"`
}
