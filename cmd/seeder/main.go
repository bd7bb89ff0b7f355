// Command seeder imports a JSON message dataset into the catalog.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--file     path to the JSON dataset (required)
//	--dry-run  validate the dataset without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/message"
	"github.com/dailystart/messages-backend/internal/app"
	"github.com/dailystart/messages-backend/internal/app/seeder"
	"github.com/dailystart/messages-backend/internal/config"
)

func main() {
	fileFlag := flag.String("file", "", "path to JSON dataset file")
	dryRunFlag := flag.Bool("dry-run", false, "validate the dataset without writing to DB")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ds, err := seeder.LoadDataset(*fileFlag)
	if err != nil {
		logger.Error("load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(pool); err != nil {
			logger.Error("run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	txm := postgres.NewTxManager(pool)
	importer := seeder.NewImporter(logger, message.New(pool), txm, *dryRunFlag)

	report, err := importer.Run(ctx, ds)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("done",
		slog.Int("categories", report.Categories),
		slog.Int("messages", report.Messages),
		slog.Bool("dry_run", report.DryRun),
	)
}
