// Package sqlite persists users and per-user transaction sets in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"finpro/internal/core"
	"finpro/internal/store"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns the user's transactions in insertion order.
func (r *Repository) Load(ctx context.Context, userKey string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount_units, type, category, description
		FROM transactions
		WHERE user_key = ?
		ORDER BY seq`, userKey)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			dateStr string
			units   int64
			typ     string
		)
		if err := rows.Scan(&tx.ID, &dateStr, &units, &typ, &tx.Category, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := time.Parse(time.RFC3339Nano, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
		tx.Date = date
		tx.Amount = core.Money{Units: units}
		tx.Type = core.TransactionType(typ)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Save replaces the user's whole set in one database transaction, so a
// concurrent Load sees either the old set or the new one, never a mix.
func (r *Repository) Save(ctx context.Context, userKey string, txs []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions WHERE user_key = ?`, userKey); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range txs {
		if err := insertTransaction(ctx, dbtx, userKey, tx); err != nil {
			return err
		}
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "Transaction set replaced",
		"component", "storage",
		"user", userKey,
		"count", len(txs))
	return nil
}

// Append inserts one record. The (user_key, id) unique constraint makes id
// assignment atomic: two concurrent appends can never share an id.
func (r *Repository) Append(ctx context.Context, userKey string, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := insertTransaction(ctx, r.db, userKey, tx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction saved",
		"component", "storage",
		"user", userKey,
		"transaction_id", tx.ID,
		"type", string(tx.Type),
		"amount_units", tx.Amount.Units,
		"category", tx.Category)
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, userKey string, tx core.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_key, date, amount_units, type, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, userKey, tx.Date.UTC().Format(time.RFC3339Nano),
		tx.Amount.Units, string(tx.Type), tx.Category, tx.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, store.ErrDuplicateID)
		}
		return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, u store.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, name, password_hash)
		VALUES (?, ?, ?)`,
		u.Username, u.Name, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (store.User, error) {
	var u store.User
	err := r.db.QueryRowContext(ctx, `
		SELECT username, name, password_hash
		FROM users
		WHERE username = ?`, username).
		Scan(&u.Username, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, store.ErrUserNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// modernc.org/sqlite surfaces constraint failures as plain error strings.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
