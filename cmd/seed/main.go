// Command seed loads a JSON dataset into the SQLite database. With -publish
// the dataset's payments are sent through the ledger queue instead of being
// written directly, so they take the same path as processor traffic.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"donorbase/internal/amqp"
	"donorbase/internal/cli"
	"donorbase/internal/config"
	"donorbase/internal/log"
	"donorbase/internal/store"
)

func main() {
	file := flag.String("file", "", "seed dataset (defaults to SEED_FILE)")
	publish := flag.Bool("publish", false, "publish payments to the ledger queue instead of inserting them")
	flag.Parse()

	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(log.ComponentStorage, cfg.LogLevel)
	cli.MustValidateConfig(logger, cfg)

	path := *file
	if path == "" {
		path = cfg.SeedFile
	}
	if path == "" {
		logger.Error("No seed file given; pass -file or set SEED_FILE")
		os.Exit(2)
	}

	ds, err := store.LoadDataset(path)
	if err != nil {
		logger.Error("Failed to load dataset", log.FieldError, err, "path", path)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	payments := ds.Payments
	if *publish {
		ds.Payments = nil
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if err := repo.ImportDataset(ctx, ds); err != nil {
		logger.Error("Import failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Dataset imported",
		"path", path,
		"db_path", cfg.SQLiteDBPath,
		"donors", len(ds.Donors),
		log.FieldDonations, len(ds.Donations),
		log.FieldPayments, len(ds.Payments))

	if !*publish {
		return
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.WithComponent(log.ComponentAMQP))
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	for i, p := range payments {
		if err := client.PublishPaymentRecorded(ctx, amqp.NewPaymentRecordedMessage(p)); err != nil {
			logger.Error("Publish failed", log.FieldError, err, "published", i)
			os.Exit(1)
		}
	}
	logger.Info("Payments published", log.FieldPayments, len(payments), "queue", cfg.AMQPQueue)
}
