/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the HR engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment, flags override)
  2. Open the SQLite snapshot cache
  3. Restore admin state (roster, payroll) from the cache
  4. Wire the session manager, handler and router
  5. Start the snapshot autosaver
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite cache path (overrides CACHE_PATH)
           Use ":memory:" for an in-memory cache

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the autosaver (final snapshot save)
  4. Close the cache
  5. Exit

EXAMPLES:
  # Run with file cache
  ./server -db="./data/hr.db"

  # Run with in-memory cache
  ./server -db=":memory:"

  # Run on a different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Cache implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainpay/hr-engine/api"
	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/config"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
	"github.com/chainpay/hr-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.App.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Cache.Path, "SQLite cache path")
	flag.Parse()

	cache, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot cache: %v", err)
	}
	defer cache.Close()

	settings := attendance.DefaultSettings()
	rosterStore := roster.NewRoster()
	register := payroll.NewRegister()

	// Restore the admin side from the cache; a missing or unparseable
	// snapshot starts from defaults.
	if found, err := api.LoadAdminSnapshot(context.Background(), cache, rosterStore, register); err != nil {
		log.Printf("Warning: discarding unparseable admin snapshot: %v", err)
	} else if found {
		log.Println("Restored admin snapshot from cache")
	}

	sessions := portal.NewManager(rosterStore, cache, settings, cfg.JWT.Secret, cfg.JWT.TTL)
	handler := api.NewHandler(sessions, rosterStore, register, cache, settings)
	router := api.NewRouter(handler, cfg.App.Env)

	saver := api.NewAutosaver(cache, rosterStore, register, sessions)
	saver.Interval = cfg.Autosave.Interval
	saver.Start()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	saver.Stop()
	log.Println("Server stopped")
}
