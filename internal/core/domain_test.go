package core

import (
	"errors"
	"testing"
	"time"
)

func validTx() Transaction {
	return Transaction{
		ID:          "tx-1",
		Date:        time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Amount:      Money{Units: 50000},
		Type:        TypeExpense,
		Category:    "Makanan",
		Description: "makan siang",
	}
}

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"empty description ok", func(tx *Transaction) { tx.Description = "" }, nil},
		{"zero amount ok", func(tx *Transaction) { tx.Amount = Money{} }, nil},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Units: -1} }, ErrInvalidAmount},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, ErrUnknownType},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTx()
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestVocabularyAllows(t *testing.T) {
	v := DefaultVocabulary()

	if !v.Allows(TypeExpense, "Makanan") {
		t.Error("Makanan should be a valid expense category")
	}
	if !v.Allows(TypeIncome, "Gaji") {
		t.Error("Gaji should be a valid income category")
	}
	if v.Allows(TypeIncome, "Makanan") {
		t.Error("expense categories must not leak into income")
	}
	if v.Allows(TypeExpense, "Mutuo") {
		t.Error("unknown category should be rejected")
	}
	if v.Allows("transfer", "Makanan") {
		t.Error("unknown type should be rejected")
	}
}

func TestDayKeyDiscardsTimeOfDay(t *testing.T) {
	tx := validTx()
	tx.Date = time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !tx.DayKey().Equal(want) {
		t.Fatalf("expected %v, got %v", want, tx.DayKey())
	}
}
