// cmd/diet-planner/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"diet-planner/internal/config"
	"diet-planner/internal/logger"
	"diet-planner/internal/server"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	transport := flag.String("transport", cfg.Transport, "Transport mode: http or stdio")
	port := flag.Int("port", cfg.Port, "Port for HTTP transport")
	host := flag.String("host", cfg.Host, "Host address")
	address := flag.String("address", "", "Address (alias for host)")
	dbPath := flag.String("db-path", cfg.DBPath, "Database path")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "Food catalog YAML (defaults to the embedded one)")
	logMode := flag.String("log-mode", cfg.LogMode, "Log mode: dev or prod")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *version {
		fmt.Printf("diet-planner version %s\n", appVersion)
		os.Exit(0)
	}

	cfg.Transport = *transport
	cfg.Port = *port
	cfg.Host = *host
	// Use address if provided, otherwise use host
	if *address != "" {
		cfg.Host = *address
	}
	cfg.DBPath = *dbPath
	cfg.CatalogPath = *catalogPath
	cfg.LogMode = *logMode
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	srv, err := server.NewMealPlanServer(cfg, lg)
	if err != nil {
		lg.Fatal("failed to create server", "error", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		lg.Error("server error", "error", err)
	}

	lg.Info("shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		lg.Error("error during shutdown", "error", err)
	}
}
