// Package store defines the persistence ports for per-user transaction sets
// and user accounts. Implementations live in the memory and sqlite
// subpackages.
package store

import (
	"context"
	"errors"

	"finpro/internal/core"
)

var (
	ErrDuplicateID       = errors.New("duplicate transaction id")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
)

// User is an account record. PasswordHash never leaves the store layer.
type User struct {
	Username     string
	Name         string
	PasswordHash string
}

// Ports for the persistence adapters. The aggregation core never touches
// storage directly; it operates on whatever snapshot these hand back.
type (
	// TransactionLoader returns one user's transactions in insertion order.
	TransactionLoader interface {
		Load(ctx context.Context, userKey string) ([]core.Transaction, error)
	}

	// TransactionSaver fully replaces one user's transaction set. The
	// replacement is atomic: no reader observes a partial state.
	TransactionSaver interface {
		Save(ctx context.Context, userKey string, txs []core.Transaction) error
	}

	// TransactionAppender appends exactly one record. The id must already
	// be assigned; the append fails on a duplicate rather than reusing it.
	TransactionAppender interface {
		Append(ctx context.Context, userKey string, tx core.Transaction) error
	}

	// UserStore persists account records for the identity service.
	UserStore interface {
		CreateUser(ctx context.Context, u User) error
		GetUser(ctx context.Context, username string) (User, error)
	}

	// TransactionStore is the full persistence surface the service needs.
	TransactionStore interface {
		TransactionLoader
		TransactionSaver
		TransactionAppender
	}
)
