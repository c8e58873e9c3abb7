package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/api"
	"github.com/BisonV07/order-management-system/internal/config"
	"github.com/BisonV07/order-management-system/internal/logging"
	"github.com/BisonV07/order-management-system/internal/orderapi"
	"github.com/BisonV07/order-management-system/internal/service"
	"github.com/BisonV07/order-management-system/internal/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting orders view server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("order_api", cfg.OrderAPI.BaseURL),
	)

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Environment)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	client := orderapi.NewClient(cfg.OrderAPI.BaseURL, cfg.OrderAPI.Timeout, logger)
	view := service.NewOrdersView(client, logger)
	router := api.NewRouter(cfg, view, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      tracing.WrapHTTPHandler(router, cfg.Tracing.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Catalog sync: keeps the search index current between requests
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	go service.RunCatalogSyncLoop(syncCtx, view, cfg.CatalogSync.Token, cfg.CatalogSync.Interval, logger)

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("Tracer provider shutdown failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
