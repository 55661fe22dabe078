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

	"stockinsight/internal/config"
	"stockinsight/internal/httpx"
	"stockinsight/internal/logger"
	"stockinsight/internal/quote"
	"stockinsight/internal/sources"
	"stockinsight/internal/web"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		// logger config is not known yet
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	httpClient := httpx.New(time.Duration(cfg.Quotes.TimeoutSec) * time.Second)
	src, err := sources.New(cfg.Quotes, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("quote source")
	}
	fetcher := quote.NewFetcher(src, log)
	h := web.NewHandler(fetcher, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           withGzip(logRequests(log, recoverPanic(log, limitBody(h.Routes())))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Quotes.TimeoutSec+10) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("source", src.Name()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
