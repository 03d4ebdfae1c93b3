// Package storage persists transactions and accounts for the dev server.
package storage

import (
	"context"
	"errors"
	"time"

	"saldo/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when the username or email is taken.
	ErrUserExists = errors.New("username or email already registered")
)

// User is a registered account. The plain password never reaches storage.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// TransactionStore records and lists transactions. List returns the newest
// first, so the head of the slice is the recent activity.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// UserStore records accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (User, error)
}

// Store is everything the dev server persists.
type Store interface {
	TransactionStore
	UserStore
	Close() error
}

// dateLayout is how creation times are stored and sent on the wire.
const dateLayout = time.RFC3339

func stamp(tx core.Transaction, now time.Time) core.Transaction {
	if tx.Date == "" {
		tx.Date = now.UTC().Format(dateLayout)
	}
	return tx
}
