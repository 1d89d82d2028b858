/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave workflow engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Build the zap logger
  3. Open the SQLite ledger
  4. Wire engine, query facade, handlers, router
  5. Start server with graceful shutdown

CONFIGURATION:
  Flags, overridable by environment variables:
  -port / PORT          HTTP server port (default: 8080)
  -db   / DB_PATH       SQLite database path (default: leave.db)
                        Use ":memory:" for an in-memory database
  -log  / LOG_LEVEL     "dev" for console output, anything else JSON

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pulsehr/leave-engine/api"
	"github.com/pulsehr/leave-engine/leave"
	"github.com/pulsehr/leave-engine/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "leave.db"), "SQLite database path")
	logMode := flag.String("log", envStr("LOG_LEVEL", "prod"), "log mode: dev or prod")
	flag.Parse()

	logger := newLogger(*logMode)
	defer logger.Sync()

	ledger, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal("failed to open ledger", zap.Error(err))
	}
	defer ledger.Close()

	engine := leave.NewEngine(ledger,
		leave.WithLogger(logger.Named("leave.engine")),
		leave.WithNotifier(&leave.LogNotifier{Log: logger.Named("leave.notify")}),
	)
	queries := leave.NewQueries(ledger, leave.SystemClock())
	handler := api.NewHandler(engine, queries, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.Int("port", *port), zap.String("db", *dbPath))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(mode string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if mode == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}
