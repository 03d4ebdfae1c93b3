package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/core"
	"saldo/internal/storage"
)

func event(id, cents int64, typ, desc string) *amqp.TransactionEvent {
	return amqp.NewTransactionCreated(core.Transaction{
		ID:          id,
		Amount:      core.Cents(cents),
		Type:        typ,
		Description: desc,
	})
}

func TestHandleTransactionCreated(t *testing.T) {
	w := NewSummaryWorker(nil, nil)
	ctx := context.Background()

	for _, ev := range []*amqp.TransactionEvent{
		event(1, 100000, "ingreso", "salary"),
		event(2, 5000, "gasto", "comida"),
		event(3, 2000, "gasto", "taxi"),
		event(4, 9999, "transferencia", "savings"),
	} {
		if err := w.HandleTransactionCreated(ctx, ev); err != nil {
			t.Fatalf("HandleTransactionCreated: %v", err)
		}
	}

	sum, n := w.Snapshot()
	if n != 4 {
		t.Fatalf("count = %d, want 4", n)
	}
	if sum.Income != core.Cents(100000) || sum.Expense != core.Cents(7000) {
		t.Fatalf("unexpected totals %+v", sum)
	}
	if sum.Food != core.Cents(5000) || sum.Transport != core.Cents(2000) {
		t.Fatalf("unexpected categories %+v", sum)
	}
}

func TestHandleTransactionCreatedIsIdempotent(t *testing.T) {
	w := NewSummaryWorker(nil, nil)
	ctx := context.Background()

	ev := event(7, 1500, "gasto", "cine")
	for i := 0; i < 3; i++ {
		if err := w.HandleTransactionCreated(ctx, ev); err != nil {
			t.Fatalf("HandleTransactionCreated: %v", err)
		}
	}

	sum, n := w.Snapshot()
	if n != 1 || sum.Expense != core.Cents(1500) || sum.Entertainment != core.Cents(1500) {
		t.Fatalf("redelivery changed the summary: n=%d %+v", n, sum)
	}
}

func TestHandleTransactionCreatedSkipsInvalidAmount(t *testing.T) {
	w := NewSummaryWorker(nil, nil)
	if err := w.HandleTransactionCreated(context.Background(), event(1, 0, "gasto", "x")); err != nil {
		t.Fatalf("invalid events must be dropped, not retried: %v", err)
	}
	if _, n := w.Snapshot(); n != 0 {
		t.Fatalf("invalid event was counted")
	}
}

func TestResync(t *testing.T) {
	store := storage.NewMemoryStoreWith([]core.Transaction{
		{Amount: core.Cents(300000), Type: "ingreso", Description: "salary"},
		{Amount: core.Cents(4500), Type: "gasto", Description: "farmacia"},
	})
	w := NewSummaryWorker(store, nil)
	ctx := context.Background()

	// resync replaces what events added with the store contents
	_ = w.HandleTransactionCreated(ctx, event(99, 100, "gasto", "ghost"))

	if err := w.Resync(ctx); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	sum, n := w.Snapshot()
	if n != 2 || sum.Income != core.Cents(300000) || sum.Health != core.Cents(4500) || sum.Uncategorized != core.Cents(0) {
		t.Fatalf("unexpected summary after resync: n=%d %+v", n, sum)
	}
}

type failingStore struct{ storage.TransactionStore }

func (failingStore) ListTransactions(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("db locked")
}

func TestResyncError(t *testing.T) {
	w := NewSummaryWorker(failingStore{}, nil)
	if err := w.Resync(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPeriodicResyncStops(t *testing.T) {
	w := NewSummaryWorker(storage.NewMemoryStore(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.PeriodicResync(ctx, time.Millisecond) }()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("PeriodicResync returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("PeriodicResync did not stop")
	}
}

func TestPeriodicResyncDisabled(t *testing.T) {
	w := NewSummaryWorker(nil, nil)
	if err := w.PeriodicResync(context.Background(), time.Second); err != nil {
		t.Fatalf("PeriodicResync without store: %v", err)
	}
}
