package main

import (
	"context"
	"errors"
	"os"
	"time"

	"donorbase/internal/amqp"
	"donorbase/internal/cli"
	"donorbase/internal/config"
	"donorbase/internal/ingest"
	"donorbase/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(log.ComponentIngest, cfg.LogLevel)
	cli.MustValidateConfig(logger, cfg)

	logger.Info("Starting ledger-worker")

	// the ledger always lives in SQLite; the memory backend is per-process
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.WithComponent(log.ComponentAMQP))
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	handler := ingest.NewHandler(repo, logger)

	done := make(chan error, 1)
	go func() {
		done <- client.ConsumePaymentRecorded(ctx, cfg.IngestBatchSize, handler.Handle)
	}()

	var consumeErr error
	select {
	case consumeErr = <-done:
	case <-ctx.Done():
		logger.Info("Shutting down worker...")
		select {
		case consumeErr = <-done:
		case <-time.After(30 * time.Second):
			logger.Warn("Shutdown timeout reached")
		}
	}

	if consumeErr != nil && !errors.Is(consumeErr, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, consumeErr)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
