package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"report-service/internal"
	"report-service/internal/config"
	"report-service/internal/logging"
	"report-service/internal/report"
	"report-service/internal/upstream"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)
	logging.Debug().
		Str("gin_mode", cfg.GinMode).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Uint32("upstream_breaker_failures", cfg.UpstreamBreakerFailures).
		Dur("upstream_breaker_cooldown", cfg.UpstreamBreakerCooldown).
		Msg("configuration loaded")

	api := upstream.New(cfg.APIBaseURL,
		upstream.WithTimeout(cfg.UpstreamTimeout),
		upstream.WithBreaker(cfg.UpstreamBreakerFailures, cfg.UpstreamBreakerCooldown),
	)

	r := internal.NewRouter(internal.Deps{
		Port:     cfg.ServicePort,
		API:      api,
		PDF:      report.NewRenderer(),
		Verifier: internal.NewVerifier(cfg.AuthSecret),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("api_base_url", cfg.APIBaseURL).
			Str("breaker", api.BreakerState()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown")
	}
}
