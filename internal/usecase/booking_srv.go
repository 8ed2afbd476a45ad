package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.DetailResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	wallet       *Wallet
	availability AvailabilityCalculator
	notifier     Notifier
	attempts     int
	now          func() time.Time
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, wallet *Wallet, notifier Notifier, config utils.BookingConfig, log *zap.Logger, now func() time.Time) BookingService {
	return &bookingService{
		repo:     repo,
		wallet:   wallet,
		notifier: notifier,
		attempts: config.MaxRetries,
		now:      now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error) {
	fields := utils.ValidateStruct(req)
	stay, err := parseStay(req.CheckIn, req.CheckOut, req.Adults, req.Children, req.Rooms, s.now(), fields)
	if err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return nil, newValidationError(map[string]string{"hotel": "Must be a valid UUID"})
	}

	var (
		booking *entity.Booking
		hotel   *entity.Hotel
		entry   *LedgerEntry
	)

	err = runInTx(ctx, s.repo, s.attempts, s.log, func(ctx context.Context, tx *repository.Repository) error {
		// The hotel row lock serializes bookings for one hotel so the
		// recount below cannot interleave with another booking.
		h, err := tx.Hotel.FindByIDForUpdate(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("lock hotel: %w", err)
		}
		if h == nil {
			return newValidationError(map[string]string{"hotel": "Hotel not found"})
		}

		avail, err := s.availability.Check(ctx, tx, h, stay)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		b := &entity.Booking{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:     userID,
			HotelID:    h.ID,
			CheckIn:    stay.CheckIn,
			CheckOut:   stay.CheckOut,
			Adults:     stay.Adults,
			Children:   stay.Children,
			Rooms:      stay.Rooms,
			TotalPrice: StayPrice(avail.PricePerNight, stay),
			Status:     entity.BookingStatusBooked,
		}
		if err := tx.Booking.Create(ctx, b); err != nil {
			return err
		}

		e, err := s.wallet.Debit(ctx, tx, userID, b.TotalPrice, b.ID)
		if err != nil {
			return err
		}

		booking, hotel, entry = b, h, e
		return nil
	})
	if err != nil {
		if IsClientError(err) {
			s.log.Warn("Booking rejected",
				zap.String("user_id", userID.String()),
				zap.String("hotel_id", hotelID.String()),
				zap.Error(err),
			)
		} else {
			s.log.Error("Booking failed",
				zap.String("user_id", userID.String()),
				zap.String("hotel_id", hotelID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("hotel_id", hotel.ID.String()),
		zap.Int("rooms", booking.Rooms),
		zap.String("total_price", utils.FormatMoney(booking.TotalPrice)),
	)

	s.notifier.Notify(bookingEvent(notify.KindBookingCreated, booking, hotel, entry))

	return &response.BookingCreatedResponse{
		Detail:    "Booking successful",
		BookingID: booking.ID.String(),
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.DetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	var (
		booking *entity.Booking
		entry   *LedgerEntry
	)

	err = runInTx(ctx, s.repo, s.attempts, s.log, func(ctx context.Context, tx *repository.Repository) error {
		b, err := tx.Booking.FindByIDForUserForUpdate(ctx, id, userID)
		if err != nil {
			return fmt.Errorf("lock booking: %w", err)
		}
		if b == nil {
			return fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		if !b.IsActive() {
			return ErrAlreadyCancelled
		}

		ledger, err := tx.Transaction.FindByBookingID(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("booking ledger: %w", err)
		}
		if !netPaid(ledger).IsPositive() {
			s.log.Error("Active booking has nothing left to refund",
				zap.String("booking_id", b.ID.String()),
				zap.Int("ledger_entries", len(ledger)),
			)
			return ErrAlreadyCancelled
		}

		if err := tx.Booking.UpdateStatus(ctx, b.ID, entity.BookingStatusBooked, entity.BookingStatusCancelled); err != nil {
			return err
		}
		b.Status = entity.BookingStatusCancelled

		e, err := s.wallet.Credit(ctx, tx, userID, b.TotalPrice, &b.ID, entity.TransactionTypeRefund)
		if err != nil {
			return err
		}

		booking, entry = b, e
		return nil
	})
	if err != nil {
		s.log.Warn("Cancel booking failed",
			zap.String("user_id", userID.String()),
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("refund", utils.FormatMoney(booking.TotalPrice)),
	)

	s.notifier.Notify(bookingEvent(notify.KindBookingCancelled, booking, nil, entry))

	return &response.DetailResponse{Detail: "Booking cancelled and refunded successfully"}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	names := make(map[uuid.UUID]string)
	result := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		name, ok := names[b.HotelID]
		if !ok {
			hotel, err := s.repo.Hotel.FindByID(ctx, b.HotelID)
			if err != nil {
				return nil, fmt.Errorf("get hotel for booking %s: %w", b.ID, err)
			}
			if hotel != nil {
				name = hotel.Name
			}
			names[b.HotelID] = name
		}
		result = append(result, response.BookingToResponse(b, name))
	}

	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	booking, err := s.repo.Booking.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}

	var name string
	if hotel, err := s.repo.Hotel.FindByID(ctx, booking.HotelID); err == nil && hotel != nil {
		name = hotel.Name
	}

	res := response.BookingToResponse(booking, name)
	return &res, nil
}

// netPaid is what the user has paid for a booking and not yet had back.
func netPaid(ledger []*entity.Transaction) decimal.Decimal {
	paid := decimal.Zero
	for _, txn := range ledger {
		switch txn.Type {
		case entity.TransactionTypeBookingPayment:
			paid = paid.Add(txn.Amount)
		case entity.TransactionTypeRefund:
			paid = paid.Sub(txn.Amount)
		}
	}
	return paid
}

func bookingEvent(kind notify.Kind, booking *entity.Booking, hotel *entity.Hotel, entry *LedgerEntry) notify.Event {
	event := notify.Event{
		Kind:       kind,
		UserID:     booking.UserID.String(),
		BookingID:  booking.ID.String(),
		HotelID:    booking.HotelID.String(),
		CheckIn:    utils.FormatDate(booking.CheckIn),
		CheckOut:   utils.FormatDate(booking.CheckOut),
		Amount:     utils.FormatMoney(booking.TotalPrice),
		Balance:    utils.FormatMoney(entry.Balance),
		OccurredAt: entry.Transaction.CreatedAt,
	}
	if hotel != nil {
		event.HotelName = hotel.Name
	}
	return event
}
