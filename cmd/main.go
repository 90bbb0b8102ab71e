// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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

	"github.com/redis/rueidis"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/clock"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/config"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/handler"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/logger"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/service"
)

const exitCode = 1

func main() {
	// ── 1. Configuration and logging ─────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(exitCode)
	}
	slog.SetDefault(logger.Setup(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	store := repository.NewStore(clock.NewSystem())
	eventRepo := repository.NewEventRepository(store)
	userRepo := repository.NewUserRepository(store)
	reservationRepo := repository.NewReservationRepository(store)
	outboxRepo := repository.NewOutboxRepository(store)

	catalogSvc := service.NewCatalogService(eventRepo, userRepo)
	reservationSvc := service.NewReservationService(reservationRepo)
	reportSvc := service.NewReportService(store, eventRepo)
	ledgerHandler := handler.NewLedgerHandler(catalogSvc, reservationSvc, reportSvc)

	if cfg.SeedDemo {
		if _, err := service.SeedDemo(catalogSvc, reservationSvc, reportSvc); err != nil {
			slog.Error("demo seeding failed", slog.String("error", err.Error()))
			os.Exit(exitCode)
		}
	}

	// ── 3. Activity stream ───────────────────────────────────────────────
	if cfg.StreamEnabled() {
		redisClient, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: []string{cfg.RedisAddr},
		})
		if err != nil {
			slog.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(exitCode)
		}
		defer redisClient.Close()

		outboxSvc := service.NewOutboxService(outboxRepo, service.NewRedisPublisher(redisClient, cfg.StreamKey))
		slog.Info("starting outbox publisher",
			slog.String("stream", cfg.StreamKey),
			slog.Duration("poll_interval", cfg.PublisherPollInterval),
			slog.Int("batch_size", cfg.PublisherBatchSize),
		)
		go service.RunPublisher(ctx, outboxSvc, cfg.PublisherPollInterval, cfg.PublisherBatchSize)
	}

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(ledgerHandler, cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("addr", srv.Addr))
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(exitCode)
		}
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.String("error", err.Error()))
		return
	}
	slog.Info("server stopped")
}
