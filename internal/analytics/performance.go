package analytics

import "spendwise/internal/core"

// Performance combines a month's spending with that month's budgets.
// TotalSpent sums every filtered transaction, budgeted category or not;
// CategoriesOverBudget counts budgets whose spend strictly exceeds the limit.
func Performance(txns []core.Transaction, budgets []core.Budget, monthKey string) core.BudgetPerformance {
	spend := SpendByCategory(FilterTransactions(txns, monthKey))
	monthBudgets := FilterBudgets(budgets, monthKey)

	var totalBudget float64
	over := 0
	for _, b := range monthBudgets {
		totalBudget += b.MonthlyLimit
		if spend.Amount(b.Category) > b.MonthlyLimit {
			over++
		}
	}

	return core.BudgetPerformance{
		TotalBudget:          totalBudget,
		TotalSpent:           spend.Total(),
		UtilizationPercent:   pct(spend.Total(), totalBudget),
		CategoriesOverBudget: over,
		CategoriesWithBudget: len(monthBudgets),
		RemainingBudget:      totalBudget - spend.Total(),
		Month:                monthKey,
	}
}
