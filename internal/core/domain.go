package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	// TransactionType is the closed set of transaction kinds.
	TransactionType string

	// Money is an exact monetary quantity in whole rupiah.
	// IDR is a zero-decimal currency, so the minor unit is one rupiah;
	// all arithmetic stays in int64 to avoid floating-point drift.
	Money struct {
		Units int64
	}

	// Transaction is one recorded financial event. It is immutable once
	// created: the store only ever appends or replaces whole sets.
	Transaction struct {
		ID          string          `json:"id"`
		Date        time.Time       `json:"date"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description,omitempty"` // optional free text
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("date cannot be zero")
	ErrUnknownType     = errors.New("unknown transaction type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("category not in vocabulary")
)

// IsValid reports whether t is one of the two known variants.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (m Money) Validate() error {
	if m.Units < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Units: m.Units + o.Units} }
func (m Money) Sub(o Money) Money { return Money{Units: m.Units - o.Units} }

// Validate checks the creation-boundary invariants: date set, amount
// non-negative, type known, category present. Vocabulary membership is
// checked separately against a Vocabulary, not here.
func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if !tx.Type.IsValid() {
		return ErrUnknownType
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// DayKey returns the calendar date of the transaction with the time of day
// discarded. Grouping and period matching work on calendar fields only, never
// on timestamp arithmetic, so a 23:59 entry never slips into the next day.
func (tx Transaction) DayKey() time.Time {
	y, m, d := tx.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
