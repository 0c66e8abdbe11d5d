// Command damoacook runs the academy API: the cached HRD-Net course list and
// detail endpoints and the inquiry intake form.
//
// @title       Damoacook API
// @version     1.0
// @description Course listings from the Work24 registry and the inquiry intake of the academy website.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/damoacook/damoacook-back/internal/app/damoacook"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Env)}))

	logger.Info("starting damoacook", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))
	if cfg.APIKey == "" {
		logger.Warn("HRD_API_KEY is empty, upstream calls will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := damoacook.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("damoacook stopped gracefully")
}

func logLevel(env string) slog.Level {
	if env == "prod" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
