package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ytget/grab-server/internal/config"
	"github.com/ytget/grab-server/internal/download"
	"github.com/ytget/grab-server/internal/handlers"
	"github.com/ytget/grab-server/internal/server"
	"github.com/ytget/grab-server/internal/ytdlp"
)

const appName = "grab-server"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	settings := config.Load()
	logger.Info("starting",
		slog.String("app", appName),
		slog.String("version", version),
		slog.String("addr", settings.ListenAddr),
		slog.String("ytdlp", settings.YtdlpPath),
	)

	// Initialize services
	engine := ytdlp.NewClient(logger, settings.YtdlpPath, settings.ProbeTimeout)
	downloadSvc := download.NewService(logger, engine)

	srv := server.New(logger, settings.ListenAddr,
		handlers.NewAnalyzeHandler(logger, engine),
		handlers.NewDownloadHandler(logger, downloadSvc),
		handlers.NewHealthHandler(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), settings.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			logger.Error("shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
