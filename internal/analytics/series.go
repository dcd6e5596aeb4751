package analytics

import (
	"math"
	"sort"

	"spendwise/internal/core"
)

// MonthlySeries totals spending per calendar month across the whole input
// set, keyed YYYY-MM and sorted chronologically. Amounts are rounded to two
// decimals for presentation. Records whose date is too short to carry a month
// key are skipped rather than crashing on malformed input.
func MonthlySeries(txns []core.Transaction) []core.MonthTotal {
	totals := make(map[string]float64)
	for _, t := range txns {
		if len(t.Date) < len(core.MonthLayout) {
			continue
		}
		totals[t.Date[:len(core.MonthLayout)]] += t.Amount
	}

	out := make([]core.MonthTotal, 0, len(totals))
	for month, amount := range totals {
		out = append(out, core.MonthTotal{
			Month:  month,
			Amount: math.Round(amount*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
