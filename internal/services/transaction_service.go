// Package services holds the dev server's business logic: it validates
// requests, writes to the store and announces new transactions.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"saldo/internal/cache"
	"saldo/internal/core"
	"saldo/internal/form"
	"saldo/internal/log"
	"saldo/internal/storage"
)

// Publisher announces stored transactions. A nil Publisher disables events.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, tx core.Transaction) error
	Close() error
}

// TransactionService orchestrates transaction and account operations across
// the store and the event bus.
type TransactionService struct {
	store      storage.Store
	publisher  Publisher
	logger     *log.Logger
	bcryptCost int

	// summaries is nil unless EnableSummaryCache was called.
	summaries *cache.LRUCache[core.Summary]
}

const summaryCacheKey = "summary"

func NewTransactionService(store storage.Store, publisher Publisher, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.Discard()
	}
	return &TransactionService{
		store:      store,
		publisher:  publisher,
		logger:     logger.WithComponent(log.ComponentApp),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// EnableSummaryCache keeps the computed summary for ttl. Every stored
// transaction drops it. It must be called before the service is shared.
func (s *TransactionService) EnableSummaryCache(ttl time.Duration) {
	if ttl > 0 {
		s.summaries = cache.NewLRUCache[core.Summary](1, ttl)
	}
}

// SummaryCache returns the summary cache for registration with a
// cache.Manager, or nil when caching is off.
func (s *TransactionService) SummaryCache() *cache.LRUCache[core.Summary] {
	return s.summaries
}

// CreateTransaction applies the entry form rules to p, stores the
// transaction and publishes an event. Publishing failures are logged only;
// the transaction is already stored.
func (s *TransactionService) CreateTransaction(ctx context.Context, p form.Payload) (core.Transaction, error) {
	if err := checkPayload(p); err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.MoneyFromFloat(p.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("convert amount: %w", err)
	}

	tx, err := s.store.CreateTransaction(ctx, core.Transaction{
		Amount:      amount,
		Type:        p.Type,
		Description: p.Description,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	if s.summaries != nil {
		s.summaries.Delete(summaryCacheKey)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionCreated(ctx, tx); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish transaction event", log.FieldTxID, tx.ID, log.FieldError, err)
		}
	}
	return tx, nil
}

// checkPayload reruns the entry form rules on a decoded request body.
func checkPayload(p form.Payload) error {
	_, errs := form.Validate(form.Submission{
		Amount:      strconv.FormatFloat(p.Amount, 'f', -1, 64),
		Type:        p.Type,
		Description: p.Description,
	})
	if strings.TrimSpace(p.Type) == "" {
		errs.Type = form.MsgRequired
	}
	return errs.Err()
}

// ListTransactions returns the stored transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Summary aggregates every stored transaction.
func (s *TransactionService) Summary(ctx context.Context) (core.Summary, error) {
	if s.summaries != nil {
		if sum, ok := s.summaries.Get(summaryCacheKey); ok {
			return sum, nil
		}
	}
	txs, err := s.ListTransactions(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	sum := core.Aggregate(txs)
	if s.summaries != nil {
		s.summaries.Set(summaryCacheKey, sum)
	}
	return sum, nil
}

// Register creates an account. The password is stored as a bcrypt hash.
func (s *TransactionService) Register(ctx context.Context, p form.RegisterPayload) (storage.User, error) {
	payload, err := form.ValidateRegistration(form.Registration(p))
	if err != nil {
		return storage.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return storage.User{}, ErrPasswordTooLong
		}
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, storage.User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return storage.User{}, err
	}
	s.logger.InfoContext(ctx, "Account created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// Close closes both the store and the publisher.
func (s *TransactionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	return errors.Join(errs...)
}
