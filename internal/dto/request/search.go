package request

// SearchRequest is bound from the query string of GET /search/.
type SearchRequest struct {
	Location string `query:"location" validate:"required,max=100"`
	CheckIn  string `query:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `query:"check_out" validate:"required,datetime=2006-01-02"`
	Adults   int    `query:"adults" validate:"min=1,max=100"`
	Children int    `query:"children" validate:"min=0,max=100"`
	Rooms    int    `query:"rooms" validate:"min=1,max=500"`
}
