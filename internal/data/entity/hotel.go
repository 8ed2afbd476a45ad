package entity

import (
	"github.com/shopspring/decimal"
)

type Hotel struct {
	Base
	Name            string          `db:"name"`
	Address         string          `db:"address"`
	Location        string          `db:"location"`
	Description     string          `db:"description"`
	TotalRooms      int             `db:"total_rooms"`
	CapacityPerRoom int             `db:"capacity_per_room"` // max occupants per room
	PricePerNight   decimal.Decimal `db:"price_per_night"`
}
