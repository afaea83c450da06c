// Package report assembles the structured monthly report payload and renders
// it: XLSX for downloads and archived statements, a terminal table for the
// CLI. Renderers only do layout; all totals come from core.Aggregate so the
// exported report can never disagree with the dashboard.
package report

import (
	"sort"
	"time"

	"finpro/internal/core"
)

const columnPlaceholder = "-"

type (
	// Row is one transaction line of the report. The income and expense
	// columns are pre-formatted: exactly one of them carries the amount,
	// the other holds the placeholder, mirroring the two-column statement
	// layout of the exported document.
	Row struct {
		Date        time.Time
		DateLabel   string // 02/01/2006
		Category    string
		Description string // "-" when absent
		Income      string // "Rp n" when type=income, else "-"
		Expense     string // "Rp n" when type=expense, else "-"
	}

	// Report is the payload handed to a rendering collaborator.
	Report struct {
		PeriodLabel string
		GeneratedAt time.Time
		Summary     core.Summary
		Rows        []Row
	}
)

// Assemble builds the report for an already period-filtered transaction set.
//
// Totals are computed by core.Aggregate, never re-derived here. Rows are
// sorted by date ascending — chronological order for a statement, which is
// deliberately the opposite of the Grouper's display order — with equal
// dates keeping their original relative order.
func Assemble(txs []core.Transaction, periodLabel string, now time.Time) (Report, error) {
	summary, err := core.Aggregate(txs)
	if err != nil {
		return Report{}, err
	}

	ordered := make([]core.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	rows := make([]Row, 0, len(ordered))
	for _, tx := range ordered {
		row := Row{
			Date:        tx.Date,
			DateLabel:   tx.Date.Format("02/01/2006"),
			Category:    tx.Category,
			Description: tx.Description,
			Income:      columnPlaceholder,
			Expense:     columnPlaceholder,
		}
		if row.Description == "" {
			row.Description = columnPlaceholder
		}
		switch tx.Type {
		case core.TypeIncome:
			row.Income = core.FormatRupiah(tx.Amount)
		case core.TypeExpense:
			row.Expense = core.FormatRupiah(tx.Amount)
		}
		rows = append(rows, row)
	}

	return Report{
		PeriodLabel: periodLabel,
		GeneratedAt: now,
		Summary:     summary,
		Rows:        rows,
	}, nil
}
