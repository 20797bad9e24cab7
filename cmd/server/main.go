package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fabzclean/backend/internal/config"
	"github.com/fabzclean/backend/internal/db"
	httpapi "github.com/fabzclean/backend/internal/http"
	"github.com/fabzclean/backend/internal/notify"
	"github.com/fabzclean/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "fabzclean-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var notifier notify.Adapter
	if cfg.NotifyURL == "" {
		notifier = notify.MockAdapter{Logger: logger}
		logger.Info().Msg("using mock notify adapter")
	} else {
		notifier = notify.HTTPAdapter{BaseURL: cfg.NotifyURL}
	}

	summary := &service.SummaryService{
		Orders:           store,
		Snapshots:        store,
		Cache:            service.NewSummaryCache(cfg.SummaryCacheTTL, nil),
		Logger:           logger,
		AnomalyThreshold: cfg.AnomalyThreshold,
	}
	recalc := &service.RecalcService{
		Summary:   summary,
		Snapshots: store,
		Runs:      store,
		Notifier:  notifier,
		Timeout:   cfg.RecalcTimeout,
		Logger:    logger,
	}

	router := httpapi.Router(cfg, store, summary, recalc, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
