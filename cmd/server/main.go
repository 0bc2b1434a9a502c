package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/config"
	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/reminder"
	"github.com/mmynk/billwise/internal/server"
	"github.com/mmynk/billwise/internal/storage"
	"github.com/mmynk/billwise/internal/storage/postgres"
	"github.com/mmynk/billwise/internal/storage/sqlite"
	"github.com/mmynk/billwise/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DBPath)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	m := metrics.New()
	l := ledger.New(store, ledger.WithMetrics(m))

	handler := server.NewRouter(server.Deps{
		Ledger:     l,
		JWTManager: auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Metrics:    m,
		Health:     store,
	})
	srv := server.NewHTTPServer(cfg.Addr(), handler)

	if cfg.ReminderSchedule != "" {
		scheduler := reminder.NewScheduler(store, reminder.LogNotifier{}, m, cfg.ReminderWindowDays)
		if err := scheduler.Start(ctx, cfg.ReminderSchedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.Addr(), "url", fmt.Sprintf("http://localhost%s", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
