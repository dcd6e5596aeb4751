// This file implements the spending-insight rules as an ordered registry of
// independent rule values. Each rule inspects a Snapshot of current-month and
// previous-month spending plus the current month's budgets, and contributes
// at most one insight. Rules never suppress each other; all that fire are
// returned, in registry order.

package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"spendwise/internal/core"
)

// Gates for the heuristic rules, in percent.
const (
	IncreaseGate = 20.0 // minimum month-over-month growth for SpendingIncreaseRule
	SavingsGate  = 20.0 // minimum share of the limit saved for BestPerformerRule
	TrendGate    = 10.0 // minimum absolute total change for TrendRule
)

// Snapshot carries everything an insight rule may inspect.
type Snapshot struct {
	Current  Spending // current-month spending by category
	Previous Spending // previous-month spending by category
	Budgets  []core.Budget
}

// InsightRule is a pure predicate-plus-builder over a Snapshot.
type InsightRule interface {
	Evaluate(s Snapshot) (core.Insight, bool)
}

// insightRules is evaluated in fixed order; extending the set means
// appending here, never touching existing rules.
var insightRules = []InsightRule{
	OverBudgetRule{},
	SpendingIncreaseRule{},
	BestPerformerRule{},
	TrendRule{},
}

// Insights evaluates every rule against the months derived from ref:
// the calendar month containing ref and the one immediately before it.
func Insights(txns []core.Transaction, budgets []core.Budget, ref time.Time) []core.Insight {
	current := MonthOf(ref)
	previous := PreviousMonthOf(ref)

	snap := Snapshot{
		Current:  SpendByCategory(FilterTransactions(txns, current)),
		Previous: SpendByCategory(FilterTransactions(txns, previous)),
		Budgets:  FilterBudgets(budgets, current),
	}

	out := make([]core.Insight, 0, len(insightRules))
	for _, rule := range insightRules {
		if insight, ok := rule.Evaluate(snap); ok {
			out = append(out, insight)
		}
	}
	return out
}

// OverBudgetRule warns when one or more budgeted categories exceeded their
// limit this month, naming the offenders.
type OverBudgetRule struct{}

func (OverBudgetRule) Evaluate(s Snapshot) (core.Insight, bool) {
	var names []string
	for _, b := range s.Budgets {
		if s.Current.Amount(b.Category) > b.MonthlyLimit {
			names = append(names, b.Category)
		}
	}
	if len(names) == 0 {
		return core.Insight{}, false
	}
	return core.Insight{
		Kind:        core.InsightWarning,
		Title:       "Over Budget Alert",
		Description: fmt.Sprintf("You're over budget in %d categories", len(names)),
		Details:     strings.Join(names, ", "),
	}, true
}

// SpendingIncreaseRule reports the category with the greatest absolute
// increase over last month, gated on growth above IncreaseGate percent.
// A category with zero prior spend has its growth treated as 0%, so it can
// never clear the gate; the running maximum is replaced only by a strictly
// greater increase, so ties keep the first-seen category.
type SpendingIncreaseRule struct{}

func (SpendingIncreaseRule) Evaluate(s Snapshot) (core.Insight, bool) {
	var (
		bestCategory string
		bestIncrease float64
		bestGrowth   float64
	)
	for _, cat := range s.Current.Categories() {
		last := s.Previous.Amount(cat)
		increase := s.Current.Amount(cat) - last
		growth := 0.0
		if last > 0 {
			growth = increase / last * 100
		}
		if increase > bestIncrease && growth > IncreaseGate {
			bestCategory, bestIncrease, bestGrowth = cat, increase, growth
		}
	}
	if bestCategory == "" {
		return core.Insight{}, false
	}
	return core.Insight{
		Kind:        core.InsightInfo,
		Title:       "Spending Increase",
		Description: fmt.Sprintf("%s spending increased by %.0f%%", bestCategory, bestGrowth),
		Details:     fmt.Sprintf("+$%.2f from last month", bestIncrease),
	}, true
}

// BestPerformerRule celebrates the budgeted category with the most money
// saved, gated on the saving exceeding SavingsGate percent of its limit.
type BestPerformerRule struct{}

func (BestPerformerRule) Evaluate(s Snapshot) (core.Insight, bool) {
	var (
		bestCategory string
		bestSaved    float64
		bestShare    float64
	)
	for _, b := range s.Budgets {
		saved := b.MonthlyLimit - s.Current.Amount(b.Category)
		share := pct(saved, b.MonthlyLimit)
		if saved > bestSaved && share > SavingsGate {
			bestCategory, bestSaved, bestShare = b.Category, saved, share
		}
	}
	if bestCategory == "" {
		return core.Insight{}, false
	}
	return core.Insight{
		Kind:        core.InsightSuccess,
		Title:       "Great Job!",
		Description: fmt.Sprintf("%s is %.0f%% under budget", bestCategory, bestShare),
		Details:     fmt.Sprintf("Saved $%.2f this month", bestSaved),
	}, true
}

// TrendRule compares total spend across all categories to last month's and
// fires when the absolute change exceeds TrendGate percent: a warning when
// spending went up, a success when it went down.
type TrendRule struct{}

func (TrendRule) Evaluate(s Snapshot) (core.Insight, bool) {
	change := s.Current.Total() - s.Previous.Total()
	changePct := pct(change, s.Previous.Total())
	if math.Abs(changePct) <= TrendGate {
		return core.Insight{}, false
	}

	kind := core.InsightSuccess
	verb := "decreased"
	sign := ""
	if change > 0 {
		kind = core.InsightWarning
		verb = "increased"
		sign = "+"
	}
	return core.Insight{
		Kind:        kind,
		Title:       "Monthly Spending Trend",
		Description: fmt.Sprintf("Total spending %s by %.0f%%", verb, math.Abs(changePct)),
		Details:     fmt.Sprintf("%s$%.2f from last month", sign, change),
	}, true
}
