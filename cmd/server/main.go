/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Stock inventory backend. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, apply command-line overrides
  2. Initialize SQLite store and run migrations
  3. Provision the administrator account on first run
  4. Wire ledgers, order processor, reporting engine and auth gate
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -addr    Listen address (overrides STOCK_ADDR)
  -db      SQLite database path (overrides STOCK_DB_PATH)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with defaults (app.db in the current directory)
  ./server

  # Run with a dedicated data directory
  STOCK_DATA_DIR=~/.local/share/stock ./server

  # Run with an in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ahmed775c6/Stock/api"
	"github.com/Ahmed775c6/Stock/auth"
	"github.com/Ahmed775c6/Stock/config"
	"github.com/Ahmed775c6/Stock/ledger"
	"github.com/Ahmed775c6/Stock/report"
	"github.com/Ahmed775c6/Stock/store/sqlite"
	"github.com/Ahmed775c6/Stock/theme"
)

func main() {
	// Flags
	addr := flag.String("addr", "", "listen address (overrides STOCK_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides STOCK_DB_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		lg := zerolog.New(os.Stderr)
		lg.Fatal().Err(err).Msg("invalid configuration")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	log := newLogger(cfg.LogLevel)

	// Initialize store
	store, err := sqlite.New(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath()).Msg("failed to initialize database")
	}
	defer store.Close()

	// Auth gate and first-run admin provisioning
	gate := auth.NewGate(store, cfg.SessionPath(), log)
	created, generated, err := gate.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to provision administrator account")
	}
	if created && generated != "" {
		// Shown once. The password is stored only as a hash.
		log.Info().
			Str("username", cfg.AdminUsername).
			Str("password", generated).
			Msg("administrator account created with a generated password")
	}

	// Domain wiring
	handler := api.NewHandler(
		ledger.NewInventoryLedger(store),
		ledger.NewSalesLedger(store),
		ledger.NewOrderProcessor(store),
		report.NewEngine(store, cfg.Language),
		gate,
		theme.NewStore(cfg.ThemePath()),
		log,
	)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(handler, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
