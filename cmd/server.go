package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, rt.config, rt.logger)
	},
}

func runServer(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	st, err := openStore(ctx, config, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.close()

	if config.Database.Driver == utils.DriverSQLite {
		if err := st.migrate(ctx); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}

	dispatcher := notify.NewDispatcher(newSink(config.Notify, logger), config.Notify.Buffer, logger)
	defer dispatcher.Close()

	opts := []wire.Option{
		wire.WithNotifier(dispatcher),
		wire.WithHealthCheck(adaptor.HealthChecker(st.ping)),
	}
	if config.RateLimit.Enabled {
		if rdb := database.NewRedisClient(ctx, config.Redis); rdb != nil {
			defer rdb.Close()
			opts = append(opts, wire.WithRedis(rdb))
		} else {
			logger.Warn("Redis unavailable, rate limiting disabled", zap.String("addr", config.Redis.Addr))
		}
	}

	app := wire.Wiring(st.repo, config, logger, opts...)
	return APIServer(ctx, app.Router, config.App.Port, logger)
}

func newSink(config utils.NotifyConfig, logger *zap.Logger) notify.Sink {
	if config.AMQPURL == "" {
		return notify.NewLogSink(logger)
	}
	logger.Info("Publishing notifications to RabbitMQ", zap.String("queue", config.Queue))
	return notify.NewAMQPSink(config.AMQPURL, config.Queue)
}

// APIServer serves handler on port until ctx is cancelled, then drains
// in-flight requests.
func APIServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
