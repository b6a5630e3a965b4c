package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gndm/lyricsearch/internal/config"
	"github.com/gndm/lyricsearch/internal/history"
	"github.com/gndm/lyricsearch/internal/lyrics"
	"github.com/gndm/lyricsearch/internal/lyricsovh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	client := lyricsovh.NewClient(cfg.UpstreamURL, cfg.Timeout())
	gateway := lyrics.NewGateway(client, lyrics.NewCache())
	gateway.SetMatchMode(lyrics.MatchMode(cfg.MatchMode))

	store, err := history.Open(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("failed to open history")
	}

	ctx := context.Background()
	if gateway.HealthCheck(ctx) {
		log.Info().Str("upstream", cfg.UpstreamURL).Msg("upstream reachable")
	} else {
		log.Warn().Str("upstream", cfg.UpstreamURL).Msg("upstream not reachable, continuing")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(gateway, store, staticHandler(cfg.Dev)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "text" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	log.Logger = logger.Level(level).With().Timestamp().Logger()
}
