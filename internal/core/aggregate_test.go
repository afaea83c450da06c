package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestAggregateMonthScenario(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 9), Type: TypeIncome, Amount: Money{Units: 1_000_000}, Category: "Gaji"},
		{ID: "2", Date: day(2024, time.May, 2, 12), Type: TypeExpense, Amount: Money{Units: 200_000}, Category: "Makanan"},
		{ID: "3", Date: day(2024, time.June, 1, 8), Type: TypeExpense, Amount: Money{Units: 50_000}, Category: "Makanan"},
	}

	p := Period{Year: 2024, Month: time.May}
	s, err := Aggregate(FilterByPeriod(txs, &p))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Income.Units != 1_000_000 {
		t.Errorf("income = %d, want 1000000", s.Income.Units)
	}
	if s.Expense.Units != 200_000 {
		t.Errorf("expense = %d, want 200000", s.Expense.Units)
	}
	if s.Balance.Units != 800_000 {
		t.Errorf("balance = %d, want 800000", s.Balance.Units)
	}
	if s.Count != 2 {
		t.Errorf("count = %d, want 2", s.Count)
	}
	want := []CategoryAmount{{Name: "Makanan", Amount: Money{Units: 200_000}}}
	if !reflect.DeepEqual(s.ByCategory, want) {
		t.Errorf("breakdown = %+v, want %+v", s.ByCategory, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Income.Units != 0 || s.Expense.Units != 0 || s.Balance.Units != 0 || s.Count != 0 {
		t.Errorf("empty input should yield zero totals, got %+v", s)
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("empty input should yield empty breakdown, got %+v", s.ByCategory)
	}
}

func TestAggregateBalanceIdentity(t *testing.T) {
	// income - expense == balance exactly, for every filter applied.
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 3, 8), Type: TypeIncome, Amount: Money{Units: 123_457}, Category: "Gaji"},
		{ID: "2", Date: day(2024, time.May, 3, 9), Type: TypeExpense, Amount: Money{Units: 999_999}, Category: "Tagihan"},
		{ID: "3", Date: day(2024, time.June, 7, 10), Type: TypeExpense, Amount: Money{Units: 1}, Category: "Makanan"},
		{ID: "4", Date: day(2024, time.June, 8, 11), Type: TypeIncome, Amount: Money{Units: 77}, Category: "Bonus"},
	}
	periods := []*Period{
		nil,
		{Year: 2024, Month: time.May},
		{Year: 2024, Month: time.June},
		{Year: 2030, Month: time.January},
	}
	for _, p := range periods {
		s, err := Aggregate(FilterByPeriod(txs, p))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Balance.Units != s.Income.Units-s.Expense.Units {
			t.Errorf("period %v: balance %d != income %d - expense %d", p, s.Balance.Units, s.Income.Units, s.Expense.Units)
		}
	}
	// Balance may be negative, no clamping.
	p := Period{Year: 2024, Month: time.May}
	s, _ := Aggregate(FilterByPeriod(txs, &p))
	if s.Balance.Units != 123_457-999_999 {
		t.Errorf("expected negative balance %d, got %d", 123_457-999_999, s.Balance.Units)
	}
}

func TestAggregateCategoryOrder(t *testing.T) {
	// Categories appear in first-appearance order, not sorted.
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 8), Type: TypeExpense, Amount: Money{Units: 10}, Category: "Transportasi"},
		{ID: "2", Date: day(2024, time.May, 1, 9), Type: TypeExpense, Amount: Money{Units: 20}, Category: "Belanja"},
		{ID: "3", Date: day(2024, time.May, 2, 9), Type: TypeExpense, Amount: Money{Units: 30}, Category: "Transportasi"},
		{ID: "4", Date: day(2024, time.May, 2, 10), Type: TypeIncome, Amount: Money{Units: 40}, Category: "Gaji"},
	}
	s, err := Aggregate(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []CategoryAmount{
		{Name: "Transportasi", Amount: Money{Units: 40}},
		{Name: "Belanja", Amount: Money{Units: 20}},
	}
	if !reflect.DeepEqual(s.ByCategory, want) {
		t.Errorf("breakdown = %+v, want %+v", s.ByCategory, want)
	}
}

func TestAggregateUnknownType(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 8), Type: "transfer", Amount: Money{Units: 10}, Category: "Makanan"},
	}
	if _, err := Aggregate(txs); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Date: day(2024, time.May, 1, 8), Type: TypeExpense, Amount: Money{Units: 10}, Category: "Makanan"},
		{ID: "2", Date: day(2024, time.May, 2, 8), Type: TypeIncome, Amount: Money{Units: 25}, Category: "Gaji"},
	}
	snapshot := make([]Transaction, len(txs))
	copy(snapshot, txs)

	first, err := Aggregate(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregating twice differs: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(txs, snapshot) {
		t.Errorf("input was mutated: %+v", txs)
	}
}

func TestAverageDailyExpense(t *testing.T) {
	s := Summary{Expense: Money{Units: 900_000}}
	cases := []struct {
		days int
		want int64
	}{
		{30, 30_000},
		{31, 29_032}, // truncated, stays in whole rupiah
		{1, 900_000},
		{0, 0},
		{-5, 0},
	}
	for _, tc := range cases {
		if got := s.AverageDailyExpense(tc.days); got.Units != tc.want {
			t.Errorf("days=%d: got %d, want %d", tc.days, got.Units, tc.want)
		}
	}
}

func TestRecentTransactions(t *testing.T) {
	txs := []Transaction{
		{ID: "old", Date: day(2024, time.January, 1, 8)},
		{ID: "new", Date: day(2024, time.June, 1, 8)},
		{ID: "mid-a", Date: day(2024, time.March, 1, 8)},
		{ID: "mid-b", Date: day(2024, time.March, 1, 8)}, // same instant as mid-a
	}
	got := RecentTransactions(txs, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid-a" || got[2].ID != "mid-b" {
		t.Errorf("expected [new mid-a mid-b], got %v", ids(got))
	}
	// Limit larger than the set returns everything.
	if got := RecentTransactions(txs, 50); len(got) != 4 {
		t.Errorf("expected 4, got %d", len(got))
	}
	// Input order untouched.
	if txs[0].ID != "old" {
		t.Error("input was reordered")
	}
}
