package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

type deps struct {
	notifier    usecase.Notifier
	redis       *redis.Client
	health      adaptor.HealthChecker
	serviceOpts []usecase.Option
}

type Option func(*deps)

func WithNotifier(n usecase.Notifier) Option {
	return func(d *deps) { d.notifier = n }
}

// WithRedis enables the rate limiter on write routes.
func WithRedis(client *redis.Client) Option {
	return func(d *deps) { d.redis = client }
}

func WithHealthCheck(check adaptor.HealthChecker) Option {
	return func(d *deps) { d.health = check }
}

func WithServiceOptions(opts ...usecase.Option) Option {
	return func(d *deps) { d.serviceOpts = append(d.serviceOpts, opts...) }
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, opts ...Option) *App {
	var d deps
	for _, opt := range opts {
		opt(&d)
	}

	service := usecase.NewService(repo, config, d.notifier, logger, d.serviceOpts...)
	handler := adaptor.NewHandler(service, d.health, logger)

	return &App{
		Router:  setupRouter(handler, config, d.redis, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, rdb *redis.Client, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	r.Get("/health", handler.Health.Health)
	r.Get("/search", handler.Search.Search)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, logger))
		limit := middleware.RateLimit(config.RateLimit, rdb, logger)

		r.With(limit).Post("/bookings", handler.Booking.CreateBooking)
		r.Get("/bookings", handler.Booking.GetUserBookings)
		r.Get("/bookings/{id}", handler.Booking.GetBooking)
		r.With(limit).Post("/cancel-booking/{id}", handler.Booking.CancelBooking)

		r.With(limit).Post("/wallet/deposit", handler.Wallet.Deposit)
		r.Get("/wallet", handler.Wallet.GetWallet)

		r.Get("/transactions", handler.Transaction.GetUserTransactions)
	})

	return r
}
