package usecase

import (
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Notifier receives events after the transaction that produced them commits.
type Notifier interface {
	Notify(event notify.Event)
}

type noopNotifier struct{}

func (noopNotifier) Notify(notify.Event) {}

type Service struct {
	Booking     BookingService
	Wallet      WalletService
	Search      SearchService
	Transaction TransactionService
	Hotel       HotelService
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces time.Now when deciding what "today" is and when
// stamping new bookings, hotels and ledger entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func NewService(repo *repository.Repository, config *utils.Config, notifier Notifier, log *zap.Logger, opts ...Option) *Service {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	wallet := NewWallet(log, o.now)

	return &Service{
		Booking:     NewBookingService(repo, wallet, notifier, config.Booking, log, o.now),
		Wallet:      NewWalletService(repo, wallet, notifier, config.Wallet, config.Booking.MaxRetries, log),
		Search:      NewSearchService(repo, log, o.now),
		Transaction: NewTransactionService(repo, log),
		Hotel:       NewHotelService(repo, log, o.now),
	}
}
