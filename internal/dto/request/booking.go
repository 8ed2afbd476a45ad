package request

type CreateBookingRequest struct {
	HotelID  string `json:"hotel" validate:"required,uuid"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Adults   int    `json:"adults" validate:"min=1,max=100"`
	Children int    `json:"children" validate:"min=0,max=100"`
	Rooms    int    `json:"rooms" validate:"min=1,max=500"`
}
