package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"donorbase/internal/cache"
	"donorbase/internal/cli"
	"donorbase/internal/config"
	"donorbase/internal/hebcal"
	apphttp "donorbase/internal/http"
	"donorbase/internal/log"
	"donorbase/internal/middleware/ratelimit"
	"donorbase/internal/report"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(log.ComponentApp, cfg.LogLevel)
	cli.MustValidateConfig(logger, cfg)

	rates, err := cfg.Rates()
	if err != nil {
		logger.Error("Invalid conversion rates", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	be := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if be.Cleanup != nil {
			if err := be.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}
	}()

	filters := cache.NewFilterStore(be.Store, 1000, cfg.CacheTTL)
	reports := report.NewService(cache.WithFilters(be.Store, filters), hebcal.New(), report.Options{
		ReportingCurrency: cfg.ReportingCurrency,
		ConversionRates:   rates,
		DefaultPageSize:   cfg.DefaultPageSize,
		MaxPageSize:       cfg.MaxPageSize,
		Logger:            logger.WithComponent(log.ComponentReport),
	})

	opts := apphttp.Options{
		Addr:      ":" + cfg.Port,
		CacheTTL:  cfg.CacheTTL,
		RateLimit: ratelimit.DefaultConfig(),
		Pinger:    be.Pinger,
		Logger:    logger.WithComponent(log.ComponentHTTP),
	}
	srv := apphttp.NewServer(opts, reports, filters)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	}()

	logger.Info("Starting donorbase server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"reporting_currency", cfg.ReportingCurrency)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-stopped
	logger.Info("Server stopped gracefully")
}
