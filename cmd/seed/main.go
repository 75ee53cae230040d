package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/app"
	"github.com/egorkkov/tutor_booking/internal/config"
	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/repository"
)

// Разовый импорт каталога преподавателей в пустую БД
func main() {
	catalogPath := flag.String("catalog", "data/catalog.json", "path to catalog JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

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

	bookingLog, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		logger.Fatal("Failed to open booking log", zap.Error(err))
	}

	seeder := app.NewSeeder(
		repository.NewTeacherRepository(pool),
		repository.NewGoalRepository(pool),
		repository.NewSlotRepository(pool),
		bookingLog,
		logger,
	)
	if err := seeder.Run(ctx, *catalogPath); err != nil {
		logger.Fatal("Failed to import catalog", zap.Error(err))
	}
}
