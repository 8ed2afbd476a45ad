package usecase

import (
	"fmt"
	"time"

	"hotel-booking/pkg/utils"
)

// Party size limits. They keep guest arithmetic far from int overflow and
// match the max tags on the request DTOs.
const (
	MaxAdults   = 100
	MaxChildren = 100
	MaxRooms    = 500
)

// Stay is a validated reservation window and party.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Rooms    int
}

func (s Stay) Nights() int {
	return utils.NightsBetween(s.CheckIn, s.CheckOut)
}

func (s Stay) Guests() int {
	return s.Adults + s.Children
}

// parseStay validates every field and reports all violations together.
// fields holds earlier tag-level failures and is extended in place.
func parseStay(checkIn, checkOut string, adults, children, rooms int, today time.Time, fields map[string]string) (Stay, error) {
	if fields == nil {
		fields = make(map[string]string)
	}
	stay := Stay{Adults: adults, Children: children, Rooms: rooms}

	in, inErr := utils.ParseDate(checkIn)
	out, outErr := utils.ParseDate(checkOut)

	switch {
	case inErr != nil:
		setOnce(fields, "check_in", "Must be a date in YYYY-MM-DD format")
	case in.Before(utils.TruncateDay(today)):
		setOnce(fields, "check_in", "Check-in date cannot be in the past")
	}

	switch {
	case outErr != nil:
		setOnce(fields, "check_out", "Must be a date in YYYY-MM-DD format")
	case inErr == nil && !out.After(in):
		setOnce(fields, "check_out", "Check-out date must be after check-in date")
	}

	checkRange(fields, "adults", adults, 1, MaxAdults)
	checkRange(fields, "children", children, 0, MaxChildren)
	checkRange(fields, "rooms", rooms, 1, MaxRooms)

	if err := newValidationError(fields); err != nil {
		return Stay{}, err
	}

	stay.CheckIn, stay.CheckOut = in, out
	return stay, nil
}

func checkRange(fields map[string]string, field string, value, min, max int) {
	switch {
	case value < min:
		setOnce(fields, field, fmt.Sprintf("Must be at least %d", min))
	case value > max:
		setOnce(fields, field, fmt.Sprintf("Must be at most %d", max))
	}
}

func setOnce(fields map[string]string, field, msg string) {
	if _, ok := fields[field]; !ok {
		fields[field] = msg
	}
}
