package core

import (
	"errors"
	"testing"
	"time"
)

func TestGroupByDaySameDateNet(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 3, 9), Type: TypeIncome, Amount: Money{Units: 500_000}, Category: "Gaji"},
		{ID: "2", Date: day(2024, time.May, 3, 14), Type: TypeExpense, Amount: Money{Units: 300_000}, Category: "Belanja"},
	}
	groups, err := GroupByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one bucket, got %d", len(groups))
	}
	g := groups[0]
	if !g.Date.Equal(day(2024, time.May, 3, 0)) {
		t.Errorf("bucket date = %v", g.Date)
	}
	if g.Net.Units != 200_000 {
		t.Errorf("net = %d, want 200000", g.Net.Units)
	}
	if len(g.Transactions) != 2 || g.Transactions[0].ID != "2" || g.Transactions[1].ID != "1" {
		t.Errorf("bucket order should be timestamp-descending, got %v", ids(g.Transactions))
	}
}

func TestGroupByDayOrdering(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Date: day(2024, time.May, 1, 8), Type: TypeExpense, Amount: Money{Units: 10}, Category: "Makanan"},
		{ID: "b", Date: day(2024, time.May, 3, 8), Type: TypeExpense, Amount: Money{Units: 20}, Category: "Makanan"},
		{ID: "c", Date: day(2024, time.May, 2, 8), Type: TypeIncome, Amount: Money{Units: 30}, Category: "Gaji"},
		{ID: "d", Date: day(2024, time.May, 3, 12), Type: TypeIncome, Amount: Money{Units: 40}, Category: "Bonus"},
	}
	groups, err := GroupByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(groups))
	}
	// Strictly descending bucket dates.
	for i := 1; i < len(groups); i++ {
		if !groups[i-1].Date.After(groups[i].Date) {
			t.Errorf("bucket dates not strictly descending: %v then %v", groups[i-1].Date, groups[i].Date)
		}
	}
	// May 3 bucket: 12:00 entry before 08:00 entry.
	if groups[0].Transactions[0].ID != "d" || groups[0].Transactions[1].ID != "b" {
		t.Errorf("within-bucket order wrong: %v", ids(groups[0].Transactions))
	}
}

func TestGroupByDayStableTies(t *testing.T) {
	// Identical timestamps keep insertion order within the bucket.
	at := day(2024, time.May, 3, 9)
	txs := []Transaction{
		{ID: "first", Date: at, Type: TypeExpense, Amount: Money{Units: 10}, Category: "Makanan"},
		{ID: "second", Date: at, Type: TypeExpense, Amount: Money{Units: 20}, Category: "Belanja"},
		{ID: "third", Date: at, Type: TypeIncome, Amount: Money{Units: 30}, Category: "Gaji"},
	}
	groups, err := GroupByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one bucket, got %d", len(groups))
	}
	got := ids(groups[0].Transactions)
	if got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Errorf("ties must preserve insertion order, got %v", got)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	groups, err := GroupByDay(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected empty, got %d buckets", len(groups))
	}
}

func TestGroupByDayNetSumMatchesBalance(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 8), Type: TypeIncome, Amount: Money{Units: 1_000_000}, Category: "Gaji"},
		{ID: "2", Date: day(2024, time.May, 1, 9), Type: TypeExpense, Amount: Money{Units: 250_000}, Category: "Belanja"},
		{ID: "3", Date: day(2024, time.May, 7, 9), Type: TypeExpense, Amount: Money{Units: 90_000}, Category: "Makanan"},
		{ID: "4", Date: day(2024, time.May, 20, 9), Type: TypeIncome, Amount: Money{Units: 15_000}, Category: "Bonus"},
	}
	groups, err := GroupByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sum int64
	for _, g := range groups {
		sum += g.Net.Units
	}
	s, err := Aggregate(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != s.Balance.Units {
		t.Errorf("sum of bucket nets %d != aggregate balance %d", sum, s.Balance.Units)
	}
}

func TestGroupByDayUnknownType(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 8), Type: "loan", Amount: Money{Units: 10}, Category: "Makanan"},
	}
	if _, err := GroupByDay(txs); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
