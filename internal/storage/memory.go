package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"saldo/internal/core"
)

// MemoryStore keeps everything in process. Contents are lost on restart.
type MemoryStore struct {
	mu     sync.Mutex
	txs    []core.Transaction
	users  []User
	nextTx int64
	nextU  int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// NewMemoryStoreWith seeds the store, e.g. for demos and tests.
func NewMemoryStoreWith(seed []core.Transaction) *MemoryStore {
	s := NewMemoryStore()
	for _, tx := range seed {
		_, _ = s.CreateTransaction(context.Background(), tx)
	}
	return s
}

func (s *MemoryStore) CreateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Amount.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTx++
	tx.ID = s.nextTx
	tx = stamp(tx, s.now())
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

func (s *MemoryStore) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	for i, tx := range s.txs {
		out[len(s.txs)-1-i] = tx
	}
	return out, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrUserExists
		}
	}
	s.nextU++
	u.ID = s.nextU
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) Close() error { return nil }
