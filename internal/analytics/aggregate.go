package analytics

import (
	"sort"

	"spendwise/internal/core"
)

// recentLimit caps the recent-transactions slice of DashboardStats.
const recentLimit = 5

// Spending holds per-category spending totals accumulated in a single pass,
// preserving the order in which categories were first seen. Unknown
// categories are not special: each distinct string gets its own bucket.
type Spending struct {
	totals map[string]float64
	counts map[string]int
	order  []string
	total  float64
	count  int
}

// SpendByCategory reduces a transaction set into per-category totals.
func SpendByCategory(txns []core.Transaction) Spending {
	s := Spending{
		totals: make(map[string]float64, len(txns)),
		counts: make(map[string]int, len(txns)),
	}
	for _, t := range txns {
		if _, seen := s.totals[t.Category]; !seen {
			s.order = append(s.order, t.Category)
		}
		s.totals[t.Category] += t.Amount
		s.counts[t.Category]++
		s.total += t.Amount
		s.count++
	}
	return s
}

// Amount returns the total spent in category, 0 when the category is absent.
func (s Spending) Amount(category string) float64 {
	return s.totals[category]
}

// Count returns the number of transactions in category.
func (s Spending) Count(category string) int {
	return s.counts[category]
}

// Categories returns the category names in first-seen order.
func (s Spending) Categories() []string {
	return s.order
}

// Total returns the sum across all categories.
func (s Spending) Total() float64 {
	return s.total
}

// Aggregate reduces a transaction set into DashboardStats. Category summaries
// are sorted by amount descending; ties retain first-seen order (stable sort).
// RecentTransactions is the first recentLimit elements of the input in its
// given order — sorting by recency is the caller's responsibility.
func Aggregate(txns []core.Transaction) core.DashboardStats {
	spend := SpendByCategory(txns)

	summaries := make([]core.CategorySummary, 0, len(spend.order))
	for _, cat := range spend.order {
		summaries = append(summaries, core.CategorySummary{
			Category:   cat,
			Amount:     spend.totals[cat],
			Count:      spend.counts[cat],
			Percentage: pct(spend.totals[cat], spend.total),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Amount > summaries[j].Amount
	})

	recent := make([]core.Transaction, 0, recentLimit)
	for i := 0; i < len(txns) && i < recentLimit; i++ {
		recent = append(recent, txns[i])
	}

	avg := 0.0
	if spend.count > 0 {
		avg = spend.total / float64(spend.count)
	}

	return core.DashboardStats{
		TotalExpenses:      spend.total,
		TotalTransactions:  spend.count,
		AverageTransaction: avg,
		CategorySummaries:  summaries,
		RecentTransactions: recent,
	}
}

// pct returns part as a percentage of whole. Division by zero resolves to 0,
// never NaN or an error — the policy applied at every percentage site.
func pct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
