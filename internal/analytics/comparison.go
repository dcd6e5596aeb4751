package analytics

import (
	"sort"

	"spendwise/internal/core"
)

// Compare builds the budget-vs-actual table for one month. The comparison is
// budget-anchored: one row per budget applicable to the month, categories
// with spend but no budget are invisible. Rows are ordered by PercentageUsed
// descending, ties keeping the input budget order.
func Compare(txns []core.Transaction, budgets []core.Budget, monthKey string) []core.BudgetComparisonRow {
	spend := SpendByCategory(FilterTransactions(txns, monthKey))
	monthBudgets := FilterBudgets(budgets, monthKey)

	rows := make([]core.BudgetComparisonRow, 0, len(monthBudgets))
	for _, b := range monthBudgets {
		actual := spend.Amount(b.Category)
		rows = append(rows, core.BudgetComparisonRow{
			Category:       b.Category,
			BudgetLimit:    b.MonthlyLimit,
			ActualSpent:    actual,
			Difference:     b.MonthlyLimit - actual,
			PercentageUsed: pct(actual, b.MonthlyLimit),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PercentageUsed > rows[j].PercentageUsed
	})
	return rows
}
