package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/final-order-relay/internal/commerce"
	"github.com/Lixing-Zhang/final-order-relay/internal/config"
	"github.com/Lixing-Zhang/final-order-relay/internal/handlers"
	"github.com/Lixing-Zhang/final-order-relay/internal/service"
	"github.com/Lixing-Zhang/final-order-relay/pkg/logger"
	"github.com/Lixing-Zhang/final-order-relay/pkg/metrics"
	"github.com/Lixing-Zhang/final-order-relay/pkg/telemetry"
)

func main() {
	// Load configuration from .env, config.yaml and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting final order relay",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"commerce_base_url", cfg.Commerce.BaseURL,
	)
	for _, warning := range cfg.Warnings() {
		log.Warn(warning)
	}

	shutdownTracer, err := telemetry.SetupTracer(context.Background(), cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Initialize client and services
	commerceClient := commerce.NewClient(cfg.Commerce, log, commerce.WithAttemptObserver(m))
	orderService := service.NewOrderService(commerceClient, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(cfg, log, m, healthHandler, orderHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownTracer(ctx); err != nil {
		log.Error("tracer shutdown error", "error", err)
	}

	log.Info("server stopped gracefully")
}
