/*
Package main is the entry point for the storefront session service.

It is responsible for loading configuration, initializing the global logging
system, choosing the session storage backend, setting up the HTTP server, and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM) to
ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/app/avatars"
	"storefront/internal/app/commerce"
	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/shop"
	"storefront/internal/app/users"
	"storefront/internal/configs"
	"storefront/internal/handler"
	"storefront/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("commerce_api", cfg.CommerceAPIURL).
		Bool("avatars_enabled", cfg.AvatarsConfigured()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session storage: Postgres when a DSN is configured, otherwise a local
	// JSON file. Both satisfy the same key-value contract.
	var storage kvstore.Store
	var pgStore *kvstore.PostgresStore
	if cfg.DatabaseDSN != "" {
		pgStore, err = kvstore.NewPostgresStore(cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to initialize session storage")
		}
		storage = pgStore
		logx.Info("Session storage backed by Postgres")
	} else {
		storage = kvstore.NewFileStore(cfg.SessionFile)
		logx.Info("Session storage backed by file", "path", cfg.SessionFile)
	}

	repo := users.NewMemoryRepository()
	commerceClient := commerce.NewHTTPClient(cfg.CommerceAPIURL, cfg.CommercePublishableKey)

	// Initialize Shop Manager
	manager := shop.NewManager(repo, storage, commerceClient, notify.NewLogNotifier())

	deps := &handler.AppDeps{
		Config:   cfg,
		Shop:     manager,
		Commerce: commerceClient,
	}

	if cfg.AvatarsConfigured() {
		avatarService, err := avatars.NewService(avatars.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize avatar storage")
		}
		deps.Avatars = avatarService
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Storefront Session Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	manager.Shutdown()

	if pgStore != nil {
		pgStore.Close()
	}

	logx.Info("Server gracefully stopped.")
}
