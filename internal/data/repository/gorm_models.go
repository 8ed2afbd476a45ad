package repository

import (
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type hotelModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"size:255;not null"`
	Address         string          `gorm:"size:255;not null"`
	Location        string          `gorm:"size:100;not null;index"`
	Description     string          `gorm:"type:text;not null"`
	TotalRooms      int             `gorm:"not null"`
	CapacityPerRoom int             `gorm:"not null"`
	PricePerNight   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

func (hotelModel) TableName() string { return "hotels" }

type bookingModel struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_bookings_user,priority:1"`
	HotelID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_bookings_hotel_window,priority:1"`
	CheckIn    time.Time            `gorm:"type:date;not null;index:idx_bookings_hotel_window,priority:3"`
	CheckOut   time.Time            `gorm:"type:date;not null;index:idx_bookings_hotel_window,priority:4"`
	Adults     int                  `gorm:"not null"`
	Children   int                  `gorm:"not null"`
	Rooms      int                  `gorm:"not null"`
	TotalPrice decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	Status     entity.BookingStatus `gorm:"size:20;not null;index:idx_bookings_hotel_window,priority:2"`
	CreatedAt  time.Time            `gorm:"not null;index:idx_bookings_user,priority:2"`
	UpdatedAt  time.Time            `gorm:"not null"`
}

func (bookingModel) TableName() string { return "bookings" }

type profileModel struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletBalance decimal.Decimal `gorm:"type:numeric(12,2);not null;check:wallet_balance >= 0"`
	EmailVerified bool            `gorm:"not null"`
	PhoneNumber   *string         `gorm:"size:15"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (profileModel) TableName() string { return "profiles" }

type transactionModel struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;index:idx_transactions_user,priority:1"`
	BookingID *uuid.UUID             `gorm:"type:uuid;index"`
	Amount    decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	Type      entity.TransactionType `gorm:"column:transaction_type;size:20;not null"`
	CreatedAt time.Time              `gorm:"not null;index:idx_transactions_user,priority:2"`
}

func (transactionModel) TableName() string { return "transactions" }

// AutoMigrate creates or updates the tables used by the gorm-backed stores.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&hotelModel{}, &profileModel{}, &bookingModel{}, &transactionModel{})
}

func newHotelModel(h *entity.Hotel) *hotelModel {
	return &hotelModel{
		ID:              h.ID,
		Name:            h.Name,
		Address:         h.Address,
		Location:        h.Location,
		Description:     h.Description,
		TotalRooms:      h.TotalRooms,
		CapacityPerRoom: h.CapacityPerRoom,
		PricePerNight:   h.PricePerNight,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func (m *hotelModel) toEntity() *entity.Hotel {
	return &entity.Hotel{
		Base:            entity.Base{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Name:            m.Name,
		Address:         m.Address,
		Location:        m.Location,
		Description:     m.Description,
		TotalRooms:      m.TotalRooms,
		CapacityPerRoom: m.CapacityPerRoom,
		PricePerNight:   m.PricePerNight,
	}
}

func newBookingModel(b *entity.Booking) *bookingModel {
	return &bookingModel{
		ID:         b.ID,
		UserID:     b.UserID,
		HotelID:    b.HotelID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Adults:     b.Adults,
		Children:   b.Children,
		Rooms:      b.Rooms,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (m *bookingModel) toEntity() *entity.Booking {
	return &entity.Booking{
		Base:       entity.Base{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		UserID:     m.UserID,
		HotelID:    m.HotelID,
		CheckIn:    m.CheckIn.UTC(),
		CheckOut:   m.CheckOut.UTC(),
		Adults:     m.Adults,
		Children:   m.Children,
		Rooms:      m.Rooms,
		TotalPrice: m.TotalPrice,
		Status:     m.Status,
	}
}

func (m *profileModel) toEntity() *entity.Profile {
	return &entity.Profile{
		UserID:        m.UserID,
		WalletBalance: m.WalletBalance,
		EmailVerified: m.EmailVerified,
		PhoneNumber:   m.PhoneNumber,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func newTransactionModel(t *entity.Transaction) *transactionModel {
	return &transactionModel{
		ID:        t.ID,
		UserID:    t.UserID,
		BookingID: t.BookingID,
		Amount:    t.Amount,
		Type:      t.Type,
		CreatedAt: t.CreatedAt,
	}
}

func (m *transactionModel) toEntity() *entity.Transaction {
	return &entity.Transaction{
		BaseSimple: entity.BaseSimple{ID: m.ID, CreatedAt: m.CreatedAt},
		UserID:     m.UserID,
		BookingID:  m.BookingID,
		Amount:     m.Amount,
		Type:       m.Type,
	}
}
