package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badge-sync/internal/app"
	"badge-sync/internal/config"
	"badge-sync/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}).
		With().
		Str("app", cfg.App.AppName).
		Str("env", cfg.App.Environment).
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error().Err(err).Msg("cleanup error")
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}
}
