package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/api"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/config"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/source"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/store"
)

// @title Inventory Alert Gateway API
// @version 1.0
// @description API for managing hospital inventory alerts and alert rules
// @BasePath /api

func main() {
	// Configure Log Level from Environment Variable
	logLevelStr := os.Getenv("LOG_LEVEL")
	switch strings.ToLower(logLevelStr) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel) // Default to Info
	}
	logrus.Infof("Log level set to: %s", logrus.GetLevel().String())

	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Select the data source
	var src source.DataSource
	switch cfg.Source.Mode {
	case "file":
		src = source.NewFileSource(cfg.Source.AlertsFile, cfg.Source.RulesFile)
		logrus.Infof("Using file data source: %s", cfg.Source.AlertsFile)
	default:
		src = source.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.APIKey,
			time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
		logrus.Infof("Using HTTP data source: %s", cfg.Source.BaseURL)
	}

	// Build the alert store and run the initial load
	alertStore := store.New(src)
	ctx := context.Background()
	if err := alertStore.Load(ctx); err != nil {
		logrus.Warnf("Initial load failed, starting with an empty store: %v", err)
	}

	// Background tickers: auto-refresh and snooze sweep
	done := make(chan struct{})
	if cfg.Refresh.IntervalSeconds > 0 {
		go runTicker(done, time.Duration(cfg.Refresh.IntervalSeconds)*time.Second, func() {
			if err := alertStore.Refresh(ctx); err != nil {
				logrus.Warnf("Auto-refresh failed: %v", err)
			}
		})
		logrus.Infof("Auto-refresh enabled every %ds", cfg.Refresh.IntervalSeconds)
	}
	if cfg.Refresh.SnoozeSweepSeconds > 0 {
		go runTicker(done, time.Duration(cfg.Refresh.SnoozeSweepSeconds)*time.Second, func() {
			if n := alertStore.ExpireSnoozes(); n > 0 {
				logrus.Infof("Snooze sweep reverted %d alerts to active", n)
			}
		})
	}

	// Set up the Echo server
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.Server.AllowedOrigins, ","),
	}))

	// API routes
	apiHandler := api.NewAPIHandler(alertStore)
	apiHandler.SetupRoutes(e)

	// Swagger documentation
	e.GET("/swagger/*", echo.WrapHandler(httpSwagger.Handler()))

	// Create HTTP server
	// Use PORT environment variable if available, otherwise use config
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", port)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Stop background tickers
	close(done)

	// Create a deadline for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Shutdown the server
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

// runTicker invokes fn on every tick until done is closed.
func runTicker(done <-chan struct{}, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			fn()
		}
	}
}
