package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)
	// FindByIDForUserForUpdate locks the booking row until the transaction ends.
	FindByIDForUserForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)

	// SumBookedRooms totals rooms held by active bookings whose stay
	// overlaps [checkIn, checkOut).
	SumBookedRooms(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut time.Time) (int, error)
	// UpdateStatus moves a booking from one status to another. It returns
	// ErrConflict when the booking is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, hotel_id, check_in, check_out, adults, children, rooms, total_price, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.HotelID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Adults,
		&booking.Children,
		&booking.Rooms,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.HotelID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Adults,
		booking.Children,
		booking.Rooms,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("hotel_id", booking.HotelID.String()),
		)
		return translateError(fmt.Errorf("create booking %s: %w", booking.ID, err))
	}

	return nil
}

func (r *bookingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	return r.findForUser(ctx, id, userID, "")
}

func (r *bookingRepository) FindByIDForUserForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	return r.findForUser(ctx, id, userID, " FOR UPDATE")
}

func (r *bookingRepository) findForUser(ctx context.Context, id, userID uuid.UUID, lock string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2` + lock

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("find booking %s: %w", id, err))
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("find bookings for user %s: %w", userID, err))
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) SumBookedRooms(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(rooms), 0)
		FROM bookings
		WHERE hotel_id = $1
		  AND status = $2
		  AND check_in < $4
		  AND check_out > $3
	`

	var booked int64
	err := r.db.QueryRow(ctx, query, hotelID, entity.BookingStatusBooked, checkIn, checkOut).Scan(&booked)
	if err != nil {
		r.log.Error("Failed to sum booked rooms",
			zap.Error(err),
			zap.String("hotel_id", hotelID.String()),
		)
		return 0, translateError(fmt.Errorf("sum booked rooms for hotel %s: %w", hotelID, err))
	}

	return int(booked), nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return translateError(fmt.Errorf("update booking %s status: %w", id, err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s is not %s", ErrConflict, id, from)
	}

	return nil
}
