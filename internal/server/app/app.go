// Package app assembles the stand-in movie API server.
package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ljxowen/movie-recommender/internal/logging"
	"github.com/ljxowen/movie-recommender/internal/server/config"
	"github.com/ljxowen/movie-recommender/internal/server/httpapi"
	"github.com/ljxowen/movie-recommender/internal/server/service"
)

type App struct {
	version   string
	buildDate string
	logger    zerolog.Logger
	server    *http.Server
}

func New(version, buildDate string, logger zerolog.Logger) (*App, error) {
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, err
	}
	logger = logger.Level(logging.ParseLevel(cfg.LogLevel))
	services, err := service.NewServices(cfg)
	if err != nil {
		return nil, err
	}
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(services, logger, cfg.CORSOrigins...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &App{version: version, buildDate: buildDate, logger: logger, server: server}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	a.logger.Info().
		Str("version", a.version).
		Str("build_date", a.buildDate).
		Str("addr", a.server.Addr).
		Msg("fake movie API listening")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}
