package usecase_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/data/repository/sqlitetest"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testToday = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

// tickingClock starts at testToday and moves one millisecond per reading,
// so records created in sequence get distinct timestamps on the same day.
type tickingClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Millisecond)
	return now
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(event notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) kinds() []notify.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Kind, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	svc      *usecase.Service
	repo     *repository.Repository
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := sqlitetest.New(t)
	notifier := &recordingNotifier{}
	config := &utils.Config{
		Wallet:  utils.WalletConfig{MinDeposit: decimal.NewFromInt(500)},
		Booking: utils.BookingConfig{MaxRetries: 3},
	}
	svc := usecase.NewService(repo, config, notifier, zap.NewNop(),
		usecase.WithClock((&tickingClock{next: testToday}).Now))
	return &fixture{svc: svc, repo: repo, notifier: notifier}
}

func (f *fixture) hotel(t *testing.T, location string, totalRooms, capacity int, price string) *entity.Hotel {
	t.Helper()
	now := time.Now().UTC()
	hotel := &entity.Hotel{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:            location + " Grand",
		Location:        location,
		TotalRooms:      totalRooms,
		CapacityPerRoom: capacity,
		PricePerNight:   decimal.RequireFromString(price),
	}
	require.NoError(t, f.repo.Hotel.Create(context.Background(), hotel))
	return hotel
}

func (f *fixture) deposit(t *testing.T, user uuid.UUID, amount string) {
	t.Helper()
	_, err := f.svc.Wallet.Deposit(context.Background(), user, json.RawMessage(amount))
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, user uuid.UUID) string {
	t.Helper()
	wallet, err := f.svc.Wallet.GetWallet(context.Background(), user)
	require.NoError(t, err)
	return wallet.Balance
}

func (f *fixture) requireReconciled(t *testing.T) {
	t.Helper()
	mismatches, err := f.svc.Wallet.Reconcile(context.Background())
	require.NoError(t, err)
	require.Empty(t, mismatches)
}

func bookingReq(hotel *entity.Hotel, in, out string, adults, children, rooms int) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		HotelID:  hotel.ID.String(),
		CheckIn:  in,
		CheckOut: out,
		Adults:   adults,
		Children: children,
		Rooms:    rooms,
	}
}

func searchReq(location, in, out string, adults, children, rooms int) *request.SearchRequest {
	return &request.SearchRequest{
		Location: location,
		CheckIn:  in,
		CheckOut: out,
		Adults:   adults,
		Children: children,
		Rooms:    rooms,
	}
}
