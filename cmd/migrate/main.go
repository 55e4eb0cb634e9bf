package main

import (
	"log/slog"
	"os"

	"github.com/aQ-codes/expense-tracker-backend/internal/config"
	"github.com/aQ-codes/expense-tracker-backend/internal/database"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	log.Info("applying migrations")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")
}
