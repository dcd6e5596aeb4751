package core

// Derived analytics records. All of these are pure functions of the input
// records at call time, never mutated after construction and never persisted;
// callers re-derive on every input change.

// CategorySummary aggregates one category's spending across an input set.
// Percentage is relative to total expenses; 0 when the total is 0.
type CategorySummary struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardStats is the engine-wide aggregate over a transaction set.
type DashboardStats struct {
	TotalExpenses      float64           `json:"totalExpenses"`
	TotalTransactions  int               `json:"totalTransactionCount"`
	AverageTransaction float64           `json:"averageTransaction"`
	CategorySummaries  []CategorySummary `json:"categorySummaries"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
}

// BudgetComparisonRow is one line of the budget-vs-actual table for a month.
// Difference may be negative; PercentageUsed is 0 when the limit is 0.
type BudgetComparisonRow struct {
	Category       string  `json:"category"`
	BudgetLimit    float64 `json:"budgetLimit"`
	ActualSpent    float64 `json:"actualSpent"`
	Difference     float64 `json:"difference"`
	PercentageUsed float64 `json:"percentageUsed"`
}

// BudgetPerformance summarizes a month's spending against its budgets.
// TotalSpent covers all categories, budgeted or not, so it can exceed
// TotalBudget even when every budgeted category is within its limit.
type BudgetPerformance struct {
	TotalBudget          float64 `json:"totalBudget"`
	TotalSpent           float64 `json:"totalSpent"`
	UtilizationPercent   float64 `json:"utilizationPercent"`
	CategoriesOverBudget int     `json:"categoriesOverBudget"`
	CategoriesWithBudget int     `json:"categoriesWithBudgets"`
	RemainingBudget      float64 `json:"remainingBudget"`
	Month                string  `json:"month"`
}

// StatusCounts buckets a month's budgeted categories into three states.
type StatusCounts struct {
	OverBudget  int `json:"overBudget"`
	OnTrack     int `json:"onTrack"`
	UnderBudget int `json:"underBudget"`
}

// InsightKind classifies the tone of an insight.
type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
)

// Insight is a rule-derived observation about spending behavior.
type Insight struct {
	Kind        InsightKind `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Details     string      `json:"details"`
}

// MonthTotal is one point of the monthly spending series.
type MonthTotal struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}
