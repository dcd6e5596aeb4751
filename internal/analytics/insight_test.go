package analytics

import (
	"strings"
	"testing"
	"time"

	"spendwise/internal/core"
)

// ref puts "current month" at March 2024 for every insight test.
var ref = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func snapshotFor(t *testing.T, txns []core.Transaction, budgets []core.Budget) Snapshot {
	t.Helper()
	return Snapshot{
		Current:  SpendByCategory(FilterTransactions(txns, MonthOf(ref))),
		Previous: SpendByCategory(FilterTransactions(txns, PreviousMonthOf(ref))),
		Budgets:  FilterBudgets(budgets, MonthOf(ref)),
	}
}

func TestOverBudgetRule(t *testing.T) {
	tests := []struct {
		name        string
		txns        []core.Transaction
		budgets     []core.Budget
		wantFire    bool
		wantDesc    string
		wantDetails string
	}{
		{
			name: "single category over",
			txns: []core.Transaction{
				{ID: "1", Amount: 120, Date: "2024-03-05", Category: "Food & Dining"},
			},
			budgets: []core.Budget{
				{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
			},
			wantFire:    true,
			wantDesc:    "You're over budget in 1 categories",
			wantDetails: "Food & Dining",
		},
		{
			name: "two categories over, comma joined in budget order",
			txns: []core.Transaction{
				{ID: "1", Amount: 120, Date: "2024-03-05", Category: "Food & Dining"},
				{ID: "2", Amount: 300, Date: "2024-03-06", Category: "Travel"},
			},
			budgets: []core.Budget{
				{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
				{ID: "b2", Category: "Travel", MonthlyLimit: 250, Month: "2024-03"},
			},
			wantFire:    true,
			wantDesc:    "You're over budget in 2 categories",
			wantDetails: "Food & Dining, Travel",
		},
		{
			name: "spend exactly at limit does not fire",
			txns: []core.Transaction{
				{ID: "1", Amount: 100, Date: "2024-03-05", Category: "Food & Dining"},
			},
			budgets: []core.Budget{
				{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
			},
			wantFire: false,
		},
		{
			name:     "no budgets",
			txns:     []core.Transaction{{ID: "1", Amount: 999, Date: "2024-03-05", Category: "Travel"}},
			budgets:  nil,
			wantFire: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight, fired := OverBudgetRule{}.Evaluate(snapshotFor(t, tt.txns, tt.budgets))
			if fired != tt.wantFire {
				t.Fatalf("fired = %v, want %v", fired, tt.wantFire)
			}
			if !fired {
				return
			}
			if insight.Kind != core.InsightWarning {
				t.Errorf("Kind = %s, want warning", insight.Kind)
			}
			if insight.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", insight.Description, tt.wantDesc)
			}
			if insight.Details != tt.wantDetails {
				t.Errorf("Details = %q, want %q", insight.Details, tt.wantDetails)
			}
		})
	}
}

func TestSpendingIncreaseRule(t *testing.T) {
	t.Run("sixty percent increase fires with dollar delta", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 50, Date: "2024-02-10", Category: "Food & Dining"},
			{ID: "2", Amount: 80, Date: "2024-03-10", Category: "Food & Dining"},
		}

		insight, fired := SpendingIncreaseRule{}.Evaluate(snapshotFor(t, txns, nil))
		if !fired {
			t.Fatal("expected rule to fire")
		}
		if insight.Kind != core.InsightInfo {
			t.Errorf("Kind = %s, want info", insight.Kind)
		}
		if want := "Food & Dining spending increased by 60%"; insight.Description != want {
			t.Errorf("Description = %q, want %q", insight.Description, want)
		}
		if want := "+$30.00 from last month"; insight.Details != want {
			t.Errorf("Details = %q, want %q", insight.Details, want)
		}
	})

	t.Run("no prior spend never clears the gate", func(t *testing.T) {
		// Previous-month spend of 0 makes the growth percentage 0, so even a
		// huge absolute increase cannot qualify.
		txns := []core.Transaction{
			{ID: "1", Amount: 5000, Date: "2024-03-10", Category: "Shopping"},
		}

		if _, fired := (SpendingIncreaseRule{}).Evaluate(snapshotFor(t, txns, nil)); fired {
			t.Error("rule should not fire for categories with zero prior spend")
		}
	})

	t.Run("growth at the gate does not fire", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 100, Date: "2024-02-10", Category: "Travel"},
			{ID: "2", Amount: 120, Date: "2024-03-10", Category: "Travel"}, // exactly +20%
		}

		if _, fired := (SpendingIncreaseRule{}).Evaluate(snapshotFor(t, txns, nil)); fired {
			t.Error("rule requires growth strictly above the gate")
		}
	})

	t.Run("greatest absolute increase wins", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 10, Date: "2024-02-01", Category: "Travel"},
			{ID: "2", Amount: 40, Date: "2024-03-01", Category: "Travel"}, // +30, +300%
			{ID: "3", Amount: 100, Date: "2024-02-02", Category: "Food & Dining"},
			{ID: "4", Amount: 200, Date: "2024-03-02", Category: "Food & Dining"}, // +100, +100%
		}

		insight, fired := SpendingIncreaseRule{}.Evaluate(snapshotFor(t, txns, nil))
		if !fired {
			t.Fatal("expected rule to fire")
		}
		if !strings.HasPrefix(insight.Description, "Food & Dining") {
			t.Errorf("winner = %q, want Food & Dining (greatest absolute increase)", insight.Description)
		}
	})

	t.Run("ties keep first-seen category", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 50, Date: "2024-02-01", Category: "Travel"},
			{ID: "2", Amount: 100, Date: "2024-03-01", Category: "Travel"}, // +50
			{ID: "3", Amount: 50, Date: "2024-02-02", Category: "Shopping"},
			{ID: "4", Amount: 100, Date: "2024-03-02", Category: "Shopping"}, // +50, same
		}

		insight, fired := SpendingIncreaseRule{}.Evaluate(snapshotFor(t, txns, nil))
		if !fired {
			t.Fatal("expected rule to fire")
		}
		if !strings.HasPrefix(insight.Description, "Travel") {
			t.Errorf("winner = %q, want Travel (first seen wins ties)", insight.Description)
		}
	})
}

func TestBestPerformerRule(t *testing.T) {
	t.Run("most saved above the gate fires", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 40, Date: "2024-03-01", Category: "Food & Dining"},
		}
		budgets := []core.Budget{
			{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
		}

		insight, fired := BestPerformerRule{}.Evaluate(snapshotFor(t, txns, budgets))
		if !fired {
			t.Fatal("expected rule to fire")
		}
		if insight.Kind != core.InsightSuccess {
			t.Errorf("Kind = %s, want success", insight.Kind)
		}
		if want := "Food & Dining is 60% under budget"; insight.Description != want {
			t.Errorf("Description = %q, want %q", insight.Description, want)
		}
		if want := "Saved $60.00 this month"; insight.Details != want {
			t.Errorf("Details = %q, want %q", insight.Details, want)
		}
	})

	t.Run("saving below the gate does not fire", func(t *testing.T) {
		txns := []core.Transaction{
			{ID: "1", Amount: 85, Date: "2024-03-01", Category: "Travel"}, // 15% saved
		}
		budgets := []core.Budget{
			{ID: "b1", Category: "Travel", MonthlyLimit: 100, Month: "2024-03"},
		}

		if _, fired := (BestPerformerRule{}).Evaluate(snapshotFor(t, txns, budgets)); fired {
			t.Error("rule should require savings strictly above the gate")
		}
	})

	t.Run("greatest absolute saving wins", func(t *testing.T) {
		budgets := []core.Budget{
			{ID: "b1", Category: "Travel", MonthlyLimit: 100, Month: "2024-03"},        // saves 100
			{ID: "b2", Category: "Food & Dining", MonthlyLimit: 500, Month: "2024-03"}, // saves 500
		}

		insight, fired := BestPerformerRule{}.Evaluate(snapshotFor(t, nil, budgets))
		if !fired {
			t.Fatal("expected rule to fire")
		}
		if !strings.HasPrefix(insight.Description, "Food & Dining") {
			t.Errorf("winner = %q, want Food & Dining", insight.Description)
		}
	})

	t.Run("zero limit cannot qualify", func(t *testing.T) {
		budgets := []core.Budget{
			{ID: "b1", Category: "Travel", MonthlyLimit: 0, Month: "2024-03"},
		}

		if _, fired := (BestPerformerRule{}).Evaluate(snapshotFor(t, nil, budgets)); fired {
			t.Error("zero-limit budget has nothing to save")
		}
	})
}

func TestTrendRule(t *testing.T) {
	tests := []struct {
		name        string
		prevTotal   float64
		curTotal    float64
		wantFire    bool
		wantKind    core.InsightKind
		wantDesc    string
		wantDetails string
	}{
		{
			name:        "spending up more than ten percent warns",
			prevTotal:   100,
			curTotal:    150,
			wantFire:    true,
			wantKind:    core.InsightWarning,
			wantDesc:    "Total spending increased by 50%",
			wantDetails: "+$50.00 from last month",
		},
		{
			name:        "spending down more than ten percent succeeds",
			prevTotal:   200,
			curTotal:    150,
			wantFire:    true,
			wantKind:    core.InsightSuccess,
			wantDesc:    "Total spending decreased by 25%",
			wantDetails: "$-50.00 from last month",
		},
		{
			name:      "change within the gate stays silent",
			prevTotal: 100,
			curTotal:  105,
			wantFire:  false,
		},
		{
			name:      "zero previous total treats change as zero percent",
			prevTotal: 0,
			curTotal:  500,
			wantFire:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []core.Transaction
			if tt.prevTotal > 0 {
				txns = append(txns, core.Transaction{ID: "p", Amount: tt.prevTotal, Date: "2024-02-10", Category: "Other"})
			}
			if tt.curTotal > 0 {
				txns = append(txns, core.Transaction{ID: "c", Amount: tt.curTotal, Date: "2024-03-10", Category: "Other"})
			}

			insight, fired := TrendRule{}.Evaluate(snapshotFor(t, txns, nil))
			if fired != tt.wantFire {
				t.Fatalf("fired = %v, want %v", fired, tt.wantFire)
			}
			if !fired {
				return
			}
			if insight.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", insight.Kind, tt.wantKind)
			}
			if insight.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", insight.Description, tt.wantDesc)
			}
			if insight.Details != tt.wantDetails {
				t.Errorf("Details = %q, want %q", insight.Details, tt.wantDetails)
			}
		})
	}
}

func TestInsights_RuleOrderAndIndependence(t *testing.T) {
	// Arrange data so every rule fires: Food over budget, Travel grown >20%,
	// Shopping far under budget, total spend up >10%.
	txns := []core.Transaction{
		{ID: "1", Amount: 120, Date: "2024-03-01", Category: "Food & Dining"},
		{ID: "2", Amount: 50, Date: "2024-02-02", Category: "Travel"},
		{ID: "3", Amount: 80, Date: "2024-03-02", Category: "Travel"},
		{ID: "4", Amount: 10, Date: "2024-03-03", Category: "Shopping"},
	}
	budgets := []core.Budget{
		{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
		{ID: "b2", Category: "Shopping", MonthlyLimit: 200, Month: "2024-03"},
	}

	insights := Insights(txns, budgets, ref)

	if len(insights) != 4 {
		t.Fatalf("got %d insights, want 4 (no rule suppresses another): %+v", len(insights), insights)
	}
	wantTitles := []string{"Over Budget Alert", "Spending Increase", "Great Job!", "Monthly Spending Trend"}
	for i, title := range wantTitles {
		if insights[i].Title != title {
			t.Errorf("insights[%d].Title = %q, want %q (fixed rule order)", i, insights[i].Title, title)
		}
	}
}

func TestInsights_JanuaryComparesAgainstPriorDecember(t *testing.T) {
	janRef := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		{ID: "1", Amount: 100, Date: "2024-12-10", Category: "Travel"},
		{ID: "2", Amount: 160, Date: "2025-01-10", Category: "Travel"},
	}

	insights := Insights(txns, nil, janRef)

	var found bool
	for _, in := range insights {
		if in.Title == "Spending Increase" {
			found = true
			if want := "Travel spending increased by 60%"; in.Description != want {
				t.Errorf("Description = %q, want %q", in.Description, want)
			}
		}
	}
	if !found {
		t.Error("expected the year rollover to compare January against prior December")
	}
}

func TestInsights_EmptyInputs(t *testing.T) {
	insights := Insights(nil, nil, ref)
	if len(insights) != 0 {
		t.Errorf("got %d insights, want 0", len(insights))
	}
}
