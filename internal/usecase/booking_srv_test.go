package usecase_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAtFullCapacityThenCancelRestoresAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Lisbon", 2, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 2, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, "Booking successful", created.Detail)
	assert.Equal(t, "600.00", f.balance(t, user))

	res, err := f.svc.Search.Search(ctx, searchReq("lisbon", "2025-06-02", "2025-06-04", 1, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, res.Results)

	other := uuid.New()
	f.deposit(t, other, "1000")
	_, err = f.svc.Booking.CreateBooking(ctx, other, bookingReq(hotel, "2025-06-02", "2025-06-05", 1, 0, 1))
	require.ErrorIs(t, err, usecase.ErrCapacityExceeded)
	assert.Equal(t, "1000.00", f.balance(t, other))

	cancelled, err := f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.NoError(t, err)
	assert.NotEmpty(t, cancelled.Detail)
	assert.Equal(t, "1000.00", f.balance(t, user))

	res, err = f.svc.Search.Search(ctx, searchReq("Lisbon", "2025-06-01", "2025-06-03", 1, 0, 1))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 2, res.Results[0].AvailableRooms)

	f.requireReconciled(t)
	assert.Equal(t,
		[]notify.Kind{notify.KindWalletDeposit, notify.KindBookingCreated, notify.KindWalletDeposit, notify.KindBookingCancelled},
		f.notifier.kinds())
}

func TestBookingOneRoomOverCapacityFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Porto", 3, 2, "50")
	user := uuid.New()
	f.deposit(t, user, "2000")

	_, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 1, 0, 1))
	require.NoError(t, err)

	_, err = f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 1, 0, 3))
	require.ErrorIs(t, err, usecase.ErrCapacityExceeded)

	_, err = f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 1, 0, 2))
	require.NoError(t, err)

	// the range starting on the checkout day is free again
	_, err = f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-03", "2025-06-04", 1, 0, 3))
	require.NoError(t, err)

	f.requireReconciled(t)
}

func TestBookingWithInsufficientFundsLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Madrid", 5, 2, "600")
	user := uuid.New()
	f.deposit(t, user, "1000")

	_, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 1, 0, 1))
	require.ErrorIs(t, err, usecase.ErrInsufficientFunds)

	var fundsErr *usecase.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, "1200.00", fundsErr.Required.StringFixed(2))

	bookings, err := f.svc.Booking.GetUserBookings(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	txns, err := f.svc.Transaction.GetUserTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypeDeposit, txns[0].Type)

	assert.Equal(t, "1000.00", f.balance(t, user))
	assert.Equal(t, []notify.Kind{notify.KindWalletDeposit}, f.notifier.kinds())
	f.requireReconciled(t)
}

func TestBookingValidationListsAllFields(t *testing.T) {
	f := newFixture(t)
	hotel := f.hotel(t, "Rome", 5, 2, "100")

	_, err := f.svc.Booking.CreateBooking(context.Background(), uuid.New(),
		bookingReq(hotel, "2025-04-30", "2025-04-30", 0, -1, 0))
	require.ErrorIs(t, err, usecase.ErrValidation)

	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "check_in")
	assert.Contains(t, vErr.Fields, "check_out")
	assert.Contains(t, vErr.Fields, "adults")
	assert.Contains(t, vErr.Fields, "children")
	assert.Contains(t, vErr.Fields, "rooms")
}

func TestBookingForTodayIsAllowed(t *testing.T) {
	f := newFixture(t)
	hotel := f.hotel(t, "Rome", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "600")

	_, err := f.svc.Booking.CreateBooking(context.Background(), user, bookingReq(hotel, "2025-05-01", "2025-05-02", 1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "500.00", f.balance(t, user))
}

func TestBookingUnknownHotelIsValidationError(t *testing.T) {
	f := newFixture(t)
	missing := &entity.Hotel{Base: entity.Base{ID: uuid.New()}}

	_, err := f.svc.Booking.CreateBooking(context.Background(), uuid.New(), bookingReq(missing, "2025-06-01", "2025-06-02", 1, 0, 1))

	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Hotel not found", vErr.Fields["hotel"])
}

func TestBookingTooManyGuests(t *testing.T) {
	f := newFixture(t)
	hotel := f.hotel(t, "Oslo", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "5000")

	_, err := f.svc.Booking.CreateBooking(context.Background(), user, bookingReq(hotel, "2025-06-01", "2025-06-02", 4, 1, 2))
	assert.ErrorIs(t, err, usecase.ErrOccupancyExceeded)
}

func TestCancelTwiceFailsWithoutSecondRefund(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Vienna", 5, 2, "150")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 2, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "700.00", f.balance(t, user))

	_, err = f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.NoError(t, err)

	_, err = f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.ErrorIs(t, err, usecase.ErrAlreadyCancelled)

	assert.Equal(t, "1000.00", f.balance(t, user))

	txns, err := f.svc.Transaction.GetUserTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, entity.TransactionTypeRefund, txns[0].Type)
	assert.Equal(t, entity.TransactionTypeBookingPayment, txns[1].Type)
	assert.Equal(t, entity.TransactionTypeDeposit, txns[2].Type)
	require.NotNil(t, txns[0].BookingID)
	assert.Equal(t, created.BookingID, *txns[0].BookingID)

	booking, err := f.svc.Booking.GetBooking(ctx, user, created.BookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	assert.Equal(t, "300.00", booking.TotalPrice)

	f.requireReconciled(t)
}

func TestCancelIsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Prague", 5, 2, "100")
	owner := uuid.New()
	f.deposit(t, owner, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, owner, bookingReq(hotel, "2025-06-01", "2025-06-02", 1, 0, 1))
	require.NoError(t, err)

	_, err = f.svc.Booking.CancelBooking(ctx, uuid.New(), created.BookingID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = f.svc.Booking.CancelBooking(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = f.svc.Booking.GetBooking(ctx, uuid.New(), created.BookingID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestUserBookingsNewestFirstWithHotelName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Berlin", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "1000")

	first, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-02", 1, 0, 1))
	require.NoError(t, err)
	second, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-07-01", "2025-07-02", 1, 0, 1))
	require.NoError(t, err)

	bookings, err := f.svc.Booking.GetUserBookings(ctx, user)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.BookingID, bookings[0].ID)
	assert.Equal(t, first.BookingID, bookings[1].ID)
	assert.Equal(t, "Berlin Grand", bookings[0].HotelName)
	assert.Equal(t, 1, bookings[0].Nights)
}

func TestConcurrentBookingsForLastRoomNeverOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Athens", 1, 2, "100")

	const workers = 8
	users := make([]uuid.UUID, workers)
	for i := range users {
		users[i] = uuid.New()
		f.deposit(t, users[i], "1000")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for _, user := range users {
		wg.Add(1)
		go func(user uuid.UUID) {
			defer wg.Done()
			_, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 1, 0, 1))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			failures = append(failures, err)
		}(user)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	for _, err := range failures {
		assert.True(t,
			errors.Is(err, usecase.ErrCapacityExceeded) || errors.Is(err, usecase.ErrConflict),
			"unexpected error: %v", err)
	}

	booked, err := f.repo.Booking.SumBookedRooms(ctx, hotel.ID, day("2025-06-01"), day("2025-06-03"))
	require.NoError(t, err)
	assert.Equal(t, 1, booked)
	f.requireReconciled(t)
}

func TestConcurrentCancelRefundsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Dublin", 3, 2, "250")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-02", 1, 0, 1))
	require.NoError(t, err)

	const workers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		already   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, usecase.ErrAlreadyCancelled):
				already++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, already)
	assert.Equal(t, "1000.00", f.balance(t, user))
	f.requireReconciled(t)
}

func TestBookingRejectsOversizedParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Oslo", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "1000")

	tests := []struct {
		name                    string
		adults, children, rooms int
		field                   string
	}{
		{"adults wrap past max int", math.MaxInt, 1, 1, "adults"},
		{"children wrap past max int", 1, math.MaxInt, 1, "children"},
		{"rooms past max int", 2, 0, math.MaxInt, "rooms"},
		{"adults just over limit", usecase.MaxAdults + 1, 0, 1, "adults"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-02", tt.adults, tt.children, tt.rooms))
			var verr *usecase.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)

			_, err = f.svc.Search.Search(ctx, searchReq("Oslo", "2025-06-01", "2025-06-02", tt.adults, tt.children, tt.rooms))
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	bookings, err := f.svc.Booking.GetUserBookings(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.Equal(t, "1000.00", f.balance(t, user))
}

func TestBookingAtPartyLimitsReachesOccupancyCheck(t *testing.T) {
	f := newFixture(t)
	hotel := f.hotel(t, "Bergen", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "1000")

	_, err := f.svc.Booking.CreateBooking(context.Background(), user,
		bookingReq(hotel, "2025-06-01", "2025-06-02", usecase.MaxAdults, usecase.MaxChildren, 1))
	assert.ErrorIs(t, err, usecase.ErrOccupancyExceeded)
}

func TestBookingAndLedgerUseServiceClock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Graz", 5, 2, "100")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-02", 1, 0, 1))
	require.NoError(t, err)
	_, err = f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.NoError(t, err)

	sameDay := func(ts time.Time) bool {
		y, m, d := ts.UTC().Date()
		return y == 2025 && m == time.May && d == 1 && !ts.Before(testToday)
	}

	booking, err := f.svc.Booking.GetBooking(ctx, user, created.BookingID)
	require.NoError(t, err)
	assert.True(t, sameDay(booking.CreatedAt), booking.CreatedAt)

	txns, err := f.svc.Transaction.GetUserTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	for _, txn := range txns {
		assert.True(t, sameDay(txn.CreatedAt), txn.CreatedAt)
	}
}

func TestCancelLeavesPaymentAndRefundPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Basel", 5, 2, "125.50")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-03", 2, 0, 1))
	require.NoError(t, err)
	_, err = f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.NoError(t, err)

	bookingID := uuid.MustParse(created.BookingID)
	ledger, err := f.repo.Transaction.FindByBookingID(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.TransactionTypeBookingPayment, ledger[0].Type)
	assert.Equal(t, entity.TransactionTypeRefund, ledger[1].Type)
	assert.True(t, ledger[0].Amount.Equal(ledger[1].Amount))
	assert.Equal(t, "251.00", ledger[1].Amount.StringFixed(2))
}

func TestCancelRefusesWhenLedgerAlreadyRefunded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hotel := f.hotel(t, "Zurich", 5, 2, "200")
	user := uuid.New()
	f.deposit(t, user, "1000")

	created, err := f.svc.Booking.CreateBooking(ctx, user, bookingReq(hotel, "2025-06-01", "2025-06-02", 1, 0, 1))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.BookingID)

	// a refund row written outside CancelBooking, status still booked
	require.NoError(t, f.repo.Transaction.Create(ctx, &entity.Transaction{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		UserID:     user,
		BookingID:  &bookingID,
		Amount:     decimal.NewFromInt(200),
		Type:       entity.TransactionTypeRefund,
	}))

	_, err = f.svc.Booking.CancelBooking(ctx, user, created.BookingID)
	require.ErrorIs(t, err, usecase.ErrAlreadyCancelled)
	assert.Equal(t, "800.00", f.balance(t, user))

	booking, err := f.svc.Booking.GetBooking(ctx, user, created.BookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusBooked, booking.Status)
}
