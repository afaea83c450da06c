package core

import (
	"fmt"
	"sort"
	"time"
)

// DailyGroup is a bucket of transactions sharing one calendar date, with the
// day's net total. Derived for display; regenerated on every query.
type DailyGroup struct {
	Date         time.Time // midnight UTC of the calendar day
	Net          Money     // income - expense for the day
	Transactions []Transaction
}

// GroupByDay partitions txs into per-day buckets for the history view.
//
// Transactions are sorted by full timestamp descending (stable, so equal
// timestamps keep their insertion order), then bucketed by calendar date.
// Buckets come back ordered by date descending, each carrying its net total.
// Empty input yields an empty slice; an unrecognized type is a data-integrity
// error, the same contract as Aggregate.
func GroupByDay(txs []Transaction) ([]DailyGroup, error) {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	groups := make([]DailyGroup, 0)
	index := make(map[time.Time]int)
	for _, tx := range sorted {
		key := tx.DayKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DailyGroup{Date: key})
		}
		switch tx.Type {
		case TypeIncome:
			groups[i].Net = groups[i].Net.Add(tx.Amount)
		case TypeExpense:
			groups[i].Net = groups[i].Net.Sub(tx.Amount)
		default:
			return nil, fmt.Errorf("group transaction %s: %w: %q", tx.ID, ErrUnknownType, tx.Type)
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}

	// Buckets inherit the descending timestamp order of their first member,
	// which already puts the most recent day first. Sorting again keeps the
	// contract explicit and independent of that detail.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups, nil
}
