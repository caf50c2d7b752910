package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/serviteca/serviteca-backend/internal/admin"
	"github.com/serviteca/serviteca-backend/pkg/config"
	"github.com/serviteca/serviteca-backend/pkg/db"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

// Wipes every business table. The original maintenance console hid this
// behind a typed confirmation, so the binary requires -confirm too.
func main() {
	logg := logger.New(logger.Options{ServiceName: "purge"})

	_ = godotenv.Load()

	confirm := flag.Bool("confirm", false, "actually delete all rows")
	flag.Parse()

	if !*confirm {
		fmt.Fprintln(os.Stderr, "refusing to purge without -confirm")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "purge",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	svc, err := admin.NewService(dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create purge service", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})
	if err := svc.Purge(ctx); err != nil {
		logg.Error(ctx, "purge failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "all tables purged")
}
