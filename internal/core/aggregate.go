package core

import (
	"fmt"
	"sort"
)

type (
	// CategoryAmount is an expense total for one category.
	CategoryAmount struct {
		Name   string
		Amount Money
	}

	// Summary holds the aggregated totals for a (typically period-filtered)
	// transaction set. It is derived data, rebuilt on every query.
	Summary struct {
		Income     Money
		Expense    Money
		Balance    Money // Income - Expense, may be negative
		Count      int
		ByCategory []CategoryAmount // expense only, first-appearance order, sparse
	}
)

// Aggregate computes income/expense/balance totals and the per-category
// expense breakdown over txs. An empty set yields a zero Summary. A record
// with an unrecognized type stops the fold with ErrUnknownType rather than
// being silently miscounted.
func Aggregate(txs []Transaction) (Summary, error) {
	s := Summary{Count: len(txs)}
	index := make(map[string]int)
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case TypeExpense:
			s.Expense = s.Expense.Add(tx.Amount)
			if i, ok := index[tx.Category]; ok {
				s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(tx.Amount)
			} else {
				index[tx.Category] = len(s.ByCategory)
				s.ByCategory = append(s.ByCategory, CategoryAmount{Name: tx.Category, Amount: tx.Amount})
			}
		default:
			return Summary{}, fmt.Errorf("aggregate transaction %s: %w: %q", tx.ID, ErrUnknownType, tx.Type)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s, nil
}

// AverageDailyExpense divides the expense total by the given number of days.
// The original app always divided by 30 regardless of the month; that is a
// known inaccuracy, so the divisor is a parameter (config.AvgDailyDivisor)
// instead of a constant. Division truncates toward zero, staying in integer
// rupiah. A non-positive divisor yields zero.
func (s Summary) AverageDailyExpense(days int) Money {
	if days <= 0 {
		return Money{}
	}
	return Money{Units: s.Expense.Units / int64(days)}
}

// RecentTransactions returns the n most recent transactions by date,
// newest first, as a fresh slice. This is the bounded slice handed to the
// advice collaborator; ties keep their original relative order.
func RecentTransactions(txs []Transaction, n int) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
