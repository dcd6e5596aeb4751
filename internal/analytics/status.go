package analytics

import "spendwise/internal/core"

// Classification thresholds, in percent of the monthly limit. Utilization
// strictly above OverBudgetCeiling is over; strictly below OnTrackFloor is
// under; the inclusive band between them is on-track, so spending exactly the
// limit still counts as on-track.
const (
	OnTrackFloor      = 80.0
	OverBudgetCeiling = 100.0
)

// Classify buckets each of the month's budgeted categories into one of three
// states by utilization percentage. A zero-limit budget resolves to 0%
// utilization and therefore classifies as under.
func Classify(txns []core.Transaction, budgets []core.Budget, monthKey string) core.StatusCounts {
	spend := SpendByCategory(FilterTransactions(txns, monthKey))

	var counts core.StatusCounts
	for _, b := range FilterBudgets(budgets, monthKey) {
		percentage := pct(spend.Amount(b.Category), b.MonthlyLimit)
		switch {
		case percentage > OverBudgetCeiling:
			counts.OverBudget++
		case percentage < OnTrackFloor:
			counts.UnderBudget++
		default:
			counts.OnTrack++
		}
	}
	return counts
}
