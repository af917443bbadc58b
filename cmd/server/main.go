package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/schooldata/internal/api/mcp"
	"github.com/palemoky/schooldata/internal/api/rest"
	"github.com/palemoky/schooldata/internal/config"
	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/gateway"
	"github.com/palemoky/schooldata/internal/logger"
)

const (
	serverName    = "SQLite Schul-Datenbank"
	serverVersion = "1.0.0"
)

func main() {
	// Initialize logger
	debug := os.Getenv("GIN_MODE") != "release"
	logger.Init(debug)
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Warn("Failed to load config file, using defaults", zap.Error(err))
		cfg, err = config.Load("")
		if err != nil {
			logger.Fatal("Invalid configuration", zap.Error(err))
		}
	}

	logger.Info("Starting school query gateway",
		zap.String("database", cfg.Database.Path),
		zap.String("transport", cfg.Server.Transport),
	)

	// The gateway never writes: open the file read-only
	db, err := database.OpenReadOnly(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	gw := gateway.New(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		repo := database.NewRepository(db)
		err = serveHTTP(ctx, cfg, db, repo, gw)
	default:
		err = mcp.NewServer(gw, serverName, serverVersion).Serve(ctx, os.Stdin, os.Stdout)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server stopped with error", zap.Error(err))
		stop()
		_ = db.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Server exited")
}

func serveHTTP(ctx context.Context, cfg *config.Config, db *database.DB, repo *database.Repository, gw *gateway.Gateway) error {
	router := rest.SetupRouter(cfg, db, repo, gw)

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("rest_api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)),
			zap.String("metrics", fmt.Sprintf("http://localhost:%d/metrics", cfg.Server.Port)),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Server forced to shutdown", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}
