package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	pos "github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Seeds the cost ledger from inventory records that predate it. Safe to
// re-run; records that already carry layers are skipped. Run this once
// per store migration window, before the first settlement hits the
// ledger.
func main() {
	var (
		logLevel string
		timeout  time.Duration
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Abort the run after this duration")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	scope := persistence.NewGormTransactionScope(db.DB)
	backfill := pos.NewBackfillService(scope, log,
		pos.WithBackfillBatchSize(cfg.Ledger.BackfillBatchSize),
		pos.WithBackfillCurrency(valueobject.Currency(cfg.Ledger.DefaultCurrency)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := backfill.Run(ctx)
	if err != nil {
		log.Fatal("Backfill failed", zap.Error(err))
	}

	log.Info("Backfill complete",
		zap.Int("inspected", report.Inspected),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
	)
}
