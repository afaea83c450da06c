// Package core implements the transaction aggregation and reporting engine:
// the money type, period filtering, totals, category breakdowns and daily
// grouping that drive both the dashboard and the exported report.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered rupiah string to whole rupiah.
//
// It tolerates Indonesian thousand separators ("1.000.000") and plain digit
// runs ("1000000"), and trims surrounding whitespace. Signs are rejected:
// recorded amounts are always non-negative, direction comes from the
// transaction type. Returns ErrInvalidAmount for anything else.
//
// Examples:
//
//	ParseAmount("50000")     -> 50000, nil
//	ParseAmount("1.000.000") -> 1000000, nil
//	ParseAmount("-5000")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	// Strip thousand separators. Both "." and "," show up depending on the
	// client locale; IDR has no fractional part so neither is a decimal mark.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Money travels over the wire as a bare integer, not an object.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.Units, 10), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Units = v
	return nil
}

// FormatRupiah renders an amount the way the UI shows it: "Rp 1.000.000",
// with a leading minus for negative balances.
func FormatRupiah(m Money) string {
	units := m.Units
	neg := units < 0
	if neg {
		units = -units
	}
	digits := strconv.FormatInt(units, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
