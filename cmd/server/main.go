/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the tax ledger server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (env / .env)
  2. Parse command-line flags (override env)
  3. Initialize structured logger
  4. Construct the in-memory stores and ledger service
  5. Configure HTTP router
  6. Start server with graceful shutdown

STATE:
  Both stores are memory-resident for the process lifetime. Restarting the
  server starts from an empty ledger.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Run on the configured port
  ./server

  # Run on a different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - ledger/service.go: Core orchestration
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

	"github.com/warp/tax-ledger/api"
	"github.com/warp/tax-ledger/config"
	"github.com/warp/tax-ledger/ledger"
	"github.com/warp/tax-ledger/logger"
)

func main() {
	cfg := config.Load()

	// Flags override env config
	port := flag.String("port", cfg.Port, "HTTP server port")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	flag.Parse()

	log := logger.Init(*logLevel)

	// Construct stores and service explicitly; no global state
	events := ledger.NewEventLog()
	sales := ledger.NewSaleIndex()
	service := ledger.NewService(events, sales, log)

	handler := api.NewHandler(service, log)
	router := api.NewRouter(handler, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
