package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/category"
	"github.com/aQ-codes/expense-tracker-backend/internal/config"
	"github.com/aQ-codes/expense-tracker-backend/internal/database"
	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
	"github.com/aQ-codes/expense-tracker-backend/internal/report"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
	"github.com/aQ-codes/expense-tracker-backend/internal/router"
	"github.com/aQ-codes/expense-tracker-backend/internal/user"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelDebug
	if cfg.Production() {
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users      user.Repository
		categories category.Repository
		expenses   expense.Repository
		grouper    report.Grouper
	)
	switch cfg.DataBackend {
	case config.BackendMemory:
		log.Warn("using the in-memory backend, data is lost on restart")
		categoryRepo := category.NewMemoryRepository()
		expenseRepo := expense.NewMemoryRepository(categoryRepo)
		users = user.NewMemoryRepository()
		categories = categoryRepo
		expenses = expenseRepo
		grouper = report.NewMemoryGrouper(expenseRepo)
	default:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		users = user.NewPostgresRepository(pool)
		categories = category.NewPostgresRepository(pool)
		expenses = expense.NewPostgresRepository(pool)
		grouper = report.NewPostgresGrouper(pool)
	}

	secret := []byte(cfg.JWTSecret)
	r := &router.Router{
		Auth:       auth.NewHandler(users, secret, cfg.TokenTTL, cfg.Production()),
		Categories: category.NewHandler(categories, expenses),
		Expenses:   expense.NewHandler(expenses, categories),
		Reports:    report.NewHandler(report.NewService(grouper, expenses, log)),
		AuthMW:     auth.Middleware(secret),
		AuthLimit:  router.RateLimitAuth(cfg.AuthRateMax, cfg.AuthRateWindow),
	}

	app := fiber.New(fiber.Config{
		AppName:      "expense-tracker-backend",
		ErrorHandler: respond.ErrorHandler(log, cfg.Production()),
	})
	app.Use(router.RequestLogger(log))
	app.Use(router.Cors(cfg.CORSOrigin))
	r.Register(app)

	go func() {
		log.Info("listening", "port", cfg.Port, "env", cfg.Env, "backend", cfg.DataBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
