package main

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"saldo/internal/amqp"
	"saldo/internal/cli"
	"saldo/internal/log"
	"saldo/internal/storage"
	"saldo/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(os.Stderr)
	logger := cli.SetupLogger(cfg, os.Stdout, log.ComponentWorker)

	logger.Info("Starting saldo-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	// With the sqlite backend the worker shares the server's database and
	// can catch up on events it missed while down.
	var store storage.TransactionStore
	if cfg.DataBackend == "sqlite" {
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
		defer repo.Close()
		store = repo
	} else {
		logger.Info("Memory backend: summary covers events received since startup")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewSummaryWorker(store, logger)
	if err := w.Resync(ctx); err != nil {
		// not fatal: events still update the summary
		logger.Error("Startup resync failed", log.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.Consume(gctx, w.HandleTransactionCreated)
	})
	g.Go(func() error {
		return w.PeriodicResync(gctx, cfg.ResyncInterval)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	sum, n := w.Snapshot()
	logger.Info("Worker shutdown complete",
		log.FieldCount, n,
		"balance", sum.Balance().String())
}
