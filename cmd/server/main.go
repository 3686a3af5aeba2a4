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

	"github.com/Simplici0/casework/internal/config"
	"github.com/Simplici0/casework/internal/db"
	"github.com/Simplici0/casework/internal/logging"
	"github.com/Simplici0/casework/internal/migrations"
	"github.com/Simplici0/casework/internal/seed"
	"github.com/Simplici0/casework/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := migrations.Up(database); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	if cfg.AutoSeed {
		stats, err := seed.Run(ctx, database, seed.Config{OrganizationName: cfg.OrganizationName})
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		logger.Info("seed complete", zap.Int("inserts", stats.Inserts))
	}

	srv := &server{store: store.New(database), log: logger}
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("db", cfg.DBPath))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
