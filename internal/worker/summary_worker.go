// Package worker keeps a running summary of the transactions announced on
// the event bus.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/storage"
)

// SummaryWorker folds transaction.created events into a summary. The
// summary is recomputed from the known transactions on every change, so a
// redelivered event is harmless.
type SummaryWorker struct {
	store  storage.TransactionStore
	logger *log.Logger

	mu  sync.Mutex
	txs map[int64]core.Transaction
	sum core.Summary
}

// NewSummaryWorker creates a worker. store may be nil, in which case the
// summary only covers events seen since startup.
func NewSummaryWorker(store storage.TransactionStore, logger *log.Logger) *SummaryWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &SummaryWorker{
		store:  store,
		logger: logger.WithComponent(log.ComponentWorker),
		txs:    make(map[int64]core.Transaction),
	}
}

// HandleTransactionCreated processes a single event from AMQP.
func (w *SummaryWorker) HandleTransactionCreated(ctx context.Context, msg *amqp.TransactionEvent) error {
	tx := msg.Transaction()
	if err := tx.Amount.Validate(); err != nil {
		// requeueing would not fix it
		w.logger.WarnContext(ctx, "Ignoring event with invalid amount",
			log.FieldTxID, tx.ID, log.FieldError, err)
		return nil
	}

	w.mu.Lock()
	_, seen := w.txs[tx.ID]
	w.txs[tx.ID] = tx
	w.recomputeLocked()
	sum := w.sum
	w.mu.Unlock()

	if seen {
		w.logger.DebugContext(ctx, "Duplicate event", log.FieldTxID, tx.ID)
		return nil
	}

	fields := log.NewFields().WithOperation(log.OpConsume).WithTransaction(tx.ID, tx.Type, tx.Description, tx.Amount.String())
	if c := tx.Category(); c != core.CategoryNone {
		fields[log.FieldCategory] = string(c)
	}
	w.logger.InfoContext(ctx, "Transaction event processed", fields.ToSlice()...)
	w.logSummary(ctx, sum)
	return nil
}

// Resync replaces the known transactions with the store's contents. Events
// missed while the worker was down are picked up this way.
func (w *SummaryWorker) Resync(ctx context.Context) error {
	if w.store == nil {
		return nil
	}
	txs, err := w.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	w.mu.Lock()
	w.txs = make(map[int64]core.Transaction, len(txs))
	for _, tx := range txs {
		w.txs[tx.ID] = tx
	}
	w.recomputeLocked()
	sum := w.sum
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Summary resynced from store", log.FieldCount, len(txs))
	w.logSummary(ctx, sum)
	return nil
}

// PeriodicResync calls Resync every interval until ctx is done. Failures
// are logged and retried on the next tick.
func (w *SummaryWorker) PeriodicResync(ctx context.Context, interval time.Duration) error {
	if w.store == nil || interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.Resync(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Periodic resync failed", log.FieldError, err)
			}
		}
	}
}

// Snapshot returns the current summary and how many transactions it covers.
func (w *SummaryWorker) Snapshot() (core.Summary, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sum, len(w.txs)
}

func (w *SummaryWorker) recomputeLocked() {
	txs := make([]core.Transaction, 0, len(w.txs))
	for _, tx := range w.txs {
		txs = append(txs, tx)
	}
	w.sum = core.Aggregate(txs)
}

func (w *SummaryWorker) logSummary(ctx context.Context, sum core.Summary) {
	args := []any{
		"income", core.FormatAmount(sum.Income),
		"expense", core.FormatAmount(sum.Expense),
		"balance", core.FormatAmount(sum.Balance()),
	}
	for _, ca := range sum.ByCategory() {
		args = append(args, string(ca.Category), core.FormatAmount(ca.Amount))
	}
	w.logger.WithComponent(log.ComponentSummary).InfoContext(ctx, "Summary updated", args...)
}
