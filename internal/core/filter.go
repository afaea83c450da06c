package core

import (
	"fmt"
	"time"
)

// Period identifies a calendar year-month used to scope the dashboard and
// the exported report.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses the "YYYY-MM" form the period picker sends.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Contains matches on the calendar year-month of the date only. Comparing
// fields rather than doing timestamp arithmetic keeps entries recorded late
// in the evening from drifting across a month boundary.
func (p Period) Contains(d time.Time) bool {
	y, m, _ := d.Date()
	return y == p.Year && m == p.Month
}

// Label renders the period for report headers, e.g. "Mei 2024".
func (p Period) Label() string {
	return monthNamesID[p.Month] + " " + fmt.Sprintf("%d", p.Year)
}

var monthNamesID = map[time.Month]string{
	time.January:   "Januari",
	time.February:  "Februari",
	time.March:     "Maret",
	time.April:     "April",
	time.May:       "Mei",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "Agustus",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "Desember",
}

// FilterByPeriod returns the transactions whose date falls in the given
// calendar month, preserving input order. A nil period selects everything.
// The result is always a fresh slice; the input is never mutated or aliased.
func FilterByPeriod(txs []Transaction, p *Period) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if p == nil || p.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
