// Package analytics derives financial metrics from in-memory transaction and
// budget records: category aggregates, month-scoped budget utilization,
// budget-vs-actual comparison, tri-state status classification and rule-based
// spending insights.
//
// Every function is a pure, synchronous computation over its arguments. The
// reference instant for "current month" is always passed in by the caller, so
// results are reproducible and independently testable.
package analytics

import (
	"strings"
	"time"

	"spendwise/internal/core"
)

// MonthOf returns the YYYY-MM key of ref's calendar month, in UTC.
func MonthOf(ref time.Time) string {
	return ref.UTC().Format(core.MonthLayout)
}

// PreviousMonthOf returns the month key one calendar month before ref,
// rolling the year boundary (January maps to the prior December). The shift
// is anchored to the first of the month, so day-of-month overflow can never
// skip a month.
func PreviousMonthOf(ref time.Time) string {
	u := ref.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format(core.MonthLayout)
}

// FilterTransactions selects the transactions whose date falls in monthKey.
// Matching is a plain string-prefix test against the YYYY-MM-DD date, with no
// timezone normalization; an unmatched or empty input yields an empty result.
func FilterTransactions(txns []core.Transaction, monthKey string) []core.Transaction {
	out := make([]core.Transaction, 0, len(txns))
	for _, t := range txns {
		if strings.HasPrefix(t.Date, monthKey) {
			out = append(out, t)
		}
	}
	return out
}

// FilterBudgets selects the budgets applicable to monthKey.
func FilterBudgets(budgets []core.Budget, monthKey string) []core.Budget {
	out := make([]core.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.Month == monthKey {
			out = append(out, b)
		}
	}
	return out
}
