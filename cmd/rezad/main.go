// Command rezad runs the RéZa room-booking HTTP server.
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

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/olivier-loorius/reza-server/internal/application"
	"github.com/olivier-loorius/reza-server/internal/config"
	rezahttp "github.com/olivier-loorius/reza-server/internal/http"
	"github.com/olivier-loorius/reza-server/internal/persistence/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := pool.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pool.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	idGenerator := uuid.NewString
	now := time.Now

	authService := application.NewAuthServiceWithLogger(
		&credentialStoreAdapter{users: sqlite.NewUserRepository(pool)},
		application.NewPasswordHasher(cfg.BcryptCost),
		application.VerifyPassword,
		idGenerator,
		now,
		logger,
	)
	roomService := application.NewRoomServiceWithLogger(
		&roomRepositoryAdapter{rooms: sqlite.NewRoomRepository(pool)},
		idGenerator,
		now,
		logger,
	)
	bookingService := application.NewBookingServiceWithLogger(
		&reservationRepositoryAdapter{reservations: sqlite.NewReservationRepository(pool)},
		idGenerator,
		now,
		logger,
	)

	router := rezahttp.NewRouter(rezahttp.RouterConfig{
		Auth:         rezahttp.NewAuthHandler(authService, logger),
		Rooms:        rezahttp.NewRoomHandler(roomService, logger),
		Reservations: rezahttp.NewReservationHandler(bookingService, logger),
		Logger:       logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return <-errCh
}
