package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/app"
	"github.com/egorkkov/tutor_booking/internal/config"
	"github.com/egorkkov/tutor_booking/internal/controller/httpapi"
	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/mirror"
	"github.com/egorkkov/tutor_booking/internal/repository"
	"github.com/egorkkov/tutor_booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	teacherRepo := repository.NewTeacherRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	goalRepo := repository.NewGoalRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	bookingLog, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		logger.Fatal("Failed to open booking log", zap.Error(err))
	}

	if cfg.CatalogPath != "" {
		seeder := app.NewSeeder(teacherRepo, goalRepo, slotRepo, bookingLog, logger)
		if err := seeder.Run(ctx, cfg.CatalogPath); err != nil {
			logger.Fatal("Failed to import catalog", zap.Error(err))
		}
	}

	availability, err := mirror.Open(cfg.MirrorPath)
	if err != nil {
		logger.Fatal("Failed to open availability mirror", zap.Error(err))
	}

	bookingService := service.NewBookingService(slotRepo, bookingRepo, bookingLog, availability, logger)
	catalogService := service.NewCatalogService(teacherRepo, slotRepo, goalRepo, logger)
	requestService := service.NewRequestService(requestRepo, logger)

	// Зеркало производное: на старте перестраиваем его из хранилища
	// и освобождаем слоты оборванных бронирований
	if err := bookingService.Reconcile(ctx); err != nil {
		logger.Fatal("Failed to reconcile availability", zap.Error(err))
	}

	api := httpapi.NewServer(catalogService, bookingService, requestService, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
