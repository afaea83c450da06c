package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finpro/internal/core"
	"finpro/internal/store/memory"
)

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]core.Transaction, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) Save(context.Context, string, []core.Transaction) error {
	return errors.New("disk on fire")
}
func (failingStore) Append(context.Context, string, core.Transaction) error {
	return errors.New("disk on fire")
}

type stubAdvisor struct {
	text string
	err  error
	got  []core.Transaction
}

func (a *stubAdvisor) Analyze(_ context.Context, txs []core.Transaction) (string, error) {
	a.got = txs
	return a.text, a.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAddTransactionAssignsID(t *testing.T) {
	svc := NewFinanceService(memory.New())

	tx, err := svc.AddTransaction(context.Background(), "budi", NewTransactionInput{
		Date:        day(2024, time.May, 3),
		Amount:      core.Money{Units: 200_000},
		Type:        core.TypeExpense,
		Category:    "Makanan",
		Description: "Makan siang",
	})
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if tx.ID == "" {
		t.Error("expected a generated id")
	}

	got := svc.Transactions(context.Background(), "budi")
	if len(got) != 1 || got[0].ID != tx.ID {
		t.Errorf("stored transactions = %+v, want the appended one", got)
	}
}

func TestAddTransactionRejectsUnknownCategory(t *testing.T) {
	svc := NewFinanceService(memory.New())

	_, err := svc.AddTransaction(context.Background(), "budi", NewTransactionInput{
		Date:     day(2024, time.May, 3),
		Amount:   core.Money{Units: 100_000},
		Type:     core.TypeIncome,
		Category: "Makanan", // expense category on an income record
	})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Errorf("error = %v, want ErrUnknownCategory", err)
	}
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	svc := NewFinanceService(memory.New())

	_, err := svc.AddTransaction(context.Background(), "budi", NewTransactionInput{
		Date:     day(2024, time.May, 3),
		Amount:   core.Money{Units: -1},
		Type:     core.TypeExpense,
		Category: "Makanan",
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestTransactionsDegradesToEmptyOnLoadFailure(t *testing.T) {
	svc := NewFinanceService(failingStore{})

	if got := svc.Transactions(context.Background(), "budi"); len(got) != 0 {
		t.Errorf("Transactions() = %+v, want empty set", got)
	}

	summary, err := svc.MonthSummary(context.Background(), "budi", core.Period{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("MonthSummary() error = %v", err)
	}
	if summary.Count != 0 || summary.Balance.Units != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
}

func TestMonthSummaryFiltersPeriod(t *testing.T) {
	svc := NewFinanceService(memory.New())
	ctx := context.Background()

	inputs := []NewTransactionInput{
		{Date: day(2024, time.May, 1), Amount: core.Money{Units: 1_000_000}, Type: core.TypeIncome, Category: "Gaji"},
		{Date: day(2024, time.May, 3), Amount: core.Money{Units: 200_000}, Type: core.TypeExpense, Category: "Makanan"},
		{Date: day(2024, time.June, 1), Amount: core.Money{Units: 500_000}, Type: core.TypeExpense, Category: "Belanja"},
	}
	for _, in := range inputs {
		if _, err := svc.AddTransaction(ctx, "budi", in); err != nil {
			t.Fatalf("AddTransaction() error = %v", err)
		}
	}

	summary, err := svc.MonthSummary(ctx, "budi", core.Period{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("MonthSummary() error = %v", err)
	}
	if summary.Income.Units != 1_000_000 || summary.Expense.Units != 200_000 || summary.Count != 2 {
		t.Errorf("summary = %+v, want May only", summary)
	}
}

func TestHistoryGroupsNewestFirst(t *testing.T) {
	svc := NewFinanceService(memory.New())
	ctx := context.Background()

	for _, in := range []NewTransactionInput{
		{Date: day(2024, time.May, 1), Amount: core.Money{Units: 1_000_000}, Type: core.TypeIncome, Category: "Gaji"},
		{Date: day(2024, time.May, 3), Amount: core.Money{Units: 200_000}, Type: core.TypeExpense, Category: "Makanan"},
	} {
		if _, err := svc.AddTransaction(ctx, "budi", in); err != nil {
			t.Fatalf("AddTransaction() error = %v", err)
		}
	}

	p := core.Period{Year: 2024, Month: time.May}
	groups, err := svc.History(ctx, "budi", &p)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if !groups[0].Date.After(groups[1].Date) {
		t.Errorf("groups not newest first: %v then %v", groups[0].Date, groups[1].Date)
	}
}

func TestMonthlyReportUsesClock(t *testing.T) {
	now := day(2024, time.June, 1)
	svc := NewFinanceService(memory.New(), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if _, err := svc.AddTransaction(ctx, "budi", NewTransactionInput{
		Date: day(2024, time.May, 3), Amount: core.Money{Units: 200_000},
		Type: core.TypeExpense, Category: "Makanan",
	}); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	rep, err := svc.MonthlyReport(ctx, "budi", core.Period{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	if !rep.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", rep.GeneratedAt, now)
	}
	if rep.PeriodLabel != "Mei 2024" {
		t.Errorf("PeriodLabel = %q, want Mei 2024", rep.PeriodLabel)
	}
	if len(rep.Rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(rep.Rows))
	}
}

func TestAdviceWithoutAdvisor(t *testing.T) {
	svc := NewFinanceService(memory.New())
	if _, err := svc.Advice(context.Background(), "budi"); !errors.Is(err, ErrAdviceUnavailable) {
		t.Errorf("error = %v, want ErrAdviceUnavailable", err)
	}
}

func TestAdviceLimitsRecentTransactions(t *testing.T) {
	adv := &stubAdvisor{text: "Kurangi jajan."}
	svc := NewFinanceService(memory.New(), WithAdvisor(adv), WithAdviceLimit(2))
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		if _, err := svc.AddTransaction(ctx, "budi", NewTransactionInput{
			Date: day(2024, time.May, d), Amount: core.Money{Units: 10_000},
			Type: core.TypeExpense, Category: "Makanan",
		}); err != nil {
			t.Fatalf("AddTransaction() error = %v", err)
		}
	}

	text, err := svc.Advice(ctx, "budi")
	if err != nil {
		t.Fatalf("Advice() error = %v", err)
	}
	if text != "Kurangi jajan." {
		t.Errorf("text = %q", text)
	}
	if len(adv.got) != 2 {
		t.Fatalf("advisor saw %d transactions, want 2", len(adv.got))
	}
	if !adv.got[0].Date.After(adv.got[1].Date) {
		t.Errorf("advisor input not newest first")
	}
}

func TestAdviceFailureIsNotFatal(t *testing.T) {
	adv := &stubAdvisor{err: errors.New("quota exceeded")}
	svc := NewFinanceService(memory.New(), WithAdvisor(adv))

	if _, err := svc.Advice(context.Background(), "budi"); !errors.Is(err, ErrAdviceUnavailable) {
		t.Errorf("error = %v, want ErrAdviceUnavailable", err)
	}
}

func TestRequestStatementWithoutQueue(t *testing.T) {
	svc := NewFinanceService(memory.New())
	err := svc.RequestStatement(context.Background(), "budi", core.Period{Year: 2024, Month: time.May})
	if !errors.Is(err, ErrArchiveUnavailable) {
		t.Errorf("error = %v, want ErrArchiveUnavailable", err)
	}
}
