// Package services orchestrates the stores, the aggregation core and the
// external collaborators behind the HTTP handlers and the report worker.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finpro/internal/advisor"
	"finpro/internal/amqp"
	"finpro/internal/core"
	"finpro/internal/report"
	"finpro/internal/store"
)

var (
	ErrAdviceUnavailable  = errors.New("advice unavailable")
	ErrArchiveUnavailable = errors.New("statement archive unavailable")
)

// NewTransactionInput carries the validated form fields for one new record.
// The id is assigned here, never by the caller.
type NewTransactionInput struct {
	Date        time.Time
	Amount      core.Money
	Type        core.TransactionType
	Category    string
	Description string
}

// FinanceService wires the transaction store, the advice collaborator and
// the statement queue together. Advisor and queue are optional; a nil
// collaborator degrades the feature, never the service.
type FinanceService struct {
	store       store.TransactionStore
	advisor     advisor.Advisor
	queue       *amqp.Client
	vocab       core.Vocabulary
	adviceLimit int
	avgDays     int
	now         func() time.Time
}

type Option func(*FinanceService)

func WithAdvisor(a advisor.Advisor) Option    { return func(s *FinanceService) { s.advisor = a } }
func WithQueue(c *amqp.Client) Option         { return func(s *FinanceService) { s.queue = c } }
func WithVocabulary(v core.Vocabulary) Option { return func(s *FinanceService) { s.vocab = v } }
func WithAdviceLimit(n int) Option            { return func(s *FinanceService) { s.adviceLimit = n } }
func WithAvgDailyDivisor(days int) Option     { return func(s *FinanceService) { s.avgDays = days } }
func WithClock(now func() time.Time) Option   { return func(s *FinanceService) { s.now = now } }

func NewFinanceService(st store.TransactionStore, opts ...Option) *FinanceService {
	s := &FinanceService{
		store:       st,
		vocab:       core.DefaultVocabulary(),
		adviceLimit: 50,
		avgDays:     30,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FinanceService) Vocabulary() core.Vocabulary { return s.vocab }

// AvgDailyDivisor is the number of days the monthly expense total is divided
// by for the "average daily expense" figure.
func (s *FinanceService) AvgDailyDivisor() int { return s.avgDays }

// Transactions returns the user's full set. A load failure degrades to an
// empty set: the dashboard renders zeros instead of an error page.
func (s *FinanceService) Transactions(ctx context.Context, userKey string) []core.Transaction {
	txs, err := s.store.Load(ctx, userKey)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions, continuing with empty set",
			"component", "finance",
			"user", userKey,
			"error", err)
		return nil
	}
	return txs
}

// AddTransaction validates the input, assigns a fresh id and appends the
// record. Category membership is checked here, at the creation boundary,
// against the type-specific vocabulary.
func (s *FinanceService) AddTransaction(ctx context.Context, userKey string, in NewTransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if !s.vocab.Allows(tx.Type, tx.Category) {
		return core.Transaction{}, fmt.Errorf("%w: %q for type %s", core.ErrUnknownCategory, tx.Category, tx.Type)
	}
	if err := s.store.Append(ctx, userKey, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	return tx, nil
}

// MonthSummary aggregates the user's transactions for one period.
func (s *FinanceService) MonthSummary(ctx context.Context, userKey string, p core.Period) (core.Summary, error) {
	txs := s.Transactions(ctx, userKey)
	summary, err := core.Aggregate(core.FilterByPeriod(txs, &p))
	if err != nil {
		return core.Summary{}, fmt.Errorf("aggregate %s: %w", p, err)
	}
	return summary, nil
}

// History returns the daily buckets for one period, newest day first.
// A nil period covers the whole set.
func (s *FinanceService) History(ctx context.Context, userKey string, p *core.Period) ([]core.DailyGroup, error) {
	txs := s.Transactions(ctx, userKey)
	groups, err := core.GroupByDay(core.FilterByPeriod(txs, p))
	if err != nil {
		return nil, fmt.Errorf("group transactions: %w", err)
	}
	return groups, nil
}

// MonthlyReport assembles the export payload for one period.
func (s *FinanceService) MonthlyReport(ctx context.Context, userKey string, p core.Period) (report.Report, error) {
	txs := s.Transactions(ctx, userKey)
	rep, err := report.Assemble(core.FilterByPeriod(txs, &p), p.Label(), s.now())
	if err != nil {
		return report.Report{}, fmt.Errorf("assemble report %s: %w", p, err)
	}
	return rep, nil
}

// Advice asks the advice collaborator about the most recent transactions.
// Failure is reported to the caller as ErrAdviceUnavailable; it is never
// fatal and never blocks aggregation.
func (s *FinanceService) Advice(ctx context.Context, userKey string) (string, error) {
	if s.advisor == nil {
		return "", ErrAdviceUnavailable
	}
	recent := core.RecentTransactions(s.Transactions(ctx, userKey), s.adviceLimit)
	text, err := s.advisor.Analyze(ctx, recent)
	if err != nil {
		slog.WarnContext(ctx, "Advice collaborator failed",
			"component", "finance",
			"user", userKey,
			"error", err)
		return "", ErrAdviceUnavailable
	}
	return text, nil
}

// RequestStatement enqueues an asynchronous statement render for the period.
func (s *FinanceService) RequestStatement(ctx context.Context, userKey string, p core.Period) error {
	if s.queue == nil {
		return ErrArchiveUnavailable
	}
	if err := s.queue.PublishStatementRequest(ctx, userKey, p.Year, int(p.Month)); err != nil {
		return fmt.Errorf("publish statement request: %w", err)
	}
	return nil
}

// Close releases the optional queue connection.
func (s *FinanceService) Close() error {
	if s.queue != nil {
		if err := s.queue.Close(); err != nil {
			return fmt.Errorf("close queue: %w", err)
		}
	}
	return nil
}
