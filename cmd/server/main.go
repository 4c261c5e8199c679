/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the shift scheduling server.
	Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
 1. Load configuration from the environment
 2. Parse command-line flags (override the environment)
 3. Build the logger and resolve the business zone
 4. Initialize SQLite store
 5. Create API handler and router
 6. Start server with graceful shutdown

ENVIRONMENT:

	LOG_LEVEL                        debug, info, warn, error (default: info)
	SERVER_PORT                      HTTP port (default: 8080)
	SERVER_ALLOWED_ORIGINS           Comma separated CORS origins
	DATABASE_PATH                    SQLite path (default: shifts.db)
	SCHEDULE_BUSINESS_TIMEZONE       Zone for day boundaries (default: America/New_York)
	SCHEDULE_PEER_OVERLAP_TOLERANCE  Peer time-off overlap in percent (default: 10)

COMMAND-LINE FLAGS:

	-port    HTTP server port
	-db      SQLite database path, ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop accepting new connections
	2. Wait for active requests to complete
	3. Close database connection
	4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment settings
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/logging"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	flag.Parse()

	logger := logging.New("shift-engine", cfg.LogLevel)

	zone, err := generic.LoadZone(cfg.Schedule.BusinessTimezone)
	if err != nil {
		logger.WithError(err).Fatalf("Unknown business timezone %q", cfg.Schedule.BusinessTimezone)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	tolerance := decimal.NewFromFloat(cfg.Schedule.PeerOverlapTolerance)
	handler := api.NewHandler(store, api.Options{
		Zone:             zone,
		TolerancePercent: &tolerance,
		Logger:           logger,
		Environment:      cfg.Environment,
	})
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	// Start server in goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port": *port,
			"db":   *dbPath,
			"zone": zone.String(),
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return
	}

	logger.Info("Server stopped")
}
