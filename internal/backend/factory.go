package backend

import (
	"context"
	"fmt"

	"saldo/internal/amqp"
	"saldo/internal/log"
	"saldo/internal/services"
	"saldo/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store storage.Store
		err   error
	)
	switch config.Type {
	case SQLiteBackend:
		store, err = storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
	case MemoryBackend:
		store = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	publisher := f.createPublisher(ctx, config)
	svc := services.NewTransactionService(store, publisher, f.logger)
	svc.EnableSummaryCache(config.SummaryCacheTTL)

	f.logger.InfoContext(ctx, "Initialized backend",
		"type", config.Type,
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &BackendResult{
		Service: svc,
		Cleanup: svc.Close,
	}, nil
}

// createPublisher connects to the broker when one is configured. A broker
// that is down at startup disables events instead of failing the server.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) services.Publisher {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		// a nil *amqp.Client must not become a non-nil interface
		return nil
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
