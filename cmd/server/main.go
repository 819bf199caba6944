package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tlind/bookmarket/internal"
	"github.com/tlind/bookmarket/internal/middleware"
	"github.com/tlind/bookmarket/internal/postgres"
	"github.com/tlind/bookmarket/internal/router"
	"github.com/tlind/bookmarket/internal/routes"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize services
	userService := postgres.NewUserService(pool)
	bookService := postgres.NewBookService(pool)
	cartService := postgres.NewCartService(pool)

	// Create router with global middleware
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.Metrics,
		router.CORS(cfg.AllowedOrigins),
		router.Logger(logger),
		middleware.WithUser(userService),
		middleware.WithRequestLogger(logger),
	)

	// Metrics endpoint (should be protected in production via firewall)
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register API routes
	routes.Register(r, routes.Deps{
		Users:         userService,
		Books:         bookService,
		Carts:         cartService,
		SecureCookies: cfg.SecureCookies,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
