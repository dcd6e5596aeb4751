package analytics

import (
	"testing"
	"time"

	"spendwise/internal/core"
)

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want string
	}{
		{
			name: "mid month",
			ref:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			want: "2024-03",
		},
		{
			name: "first instant of year",
			ref:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-01",
		},
		{
			name: "non-UTC zone normalized to UTC",
			ref:  time.Date(2024, 4, 1, 0, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			want: "2024-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthOf(tt.ref); got != tt.want {
				t.Errorf("MonthOf(%v) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestPreviousMonthOf(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want string
	}{
		{
			name: "mid year",
			ref:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want: "2024-02",
		},
		{
			name: "january rolls to december of prior year",
			ref:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			want: "2023-12",
		},
		{
			name: "day 31 does not skip short months",
			ref:  time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			want: "2024-02",
		},
		{
			name: "december stays in year",
			ref:  time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC),
			want: "2024-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviousMonthOf(tt.ref); got != tt.want {
				t.Errorf("PreviousMonthOf(%v) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestFilterTransactions(t *testing.T) {
	txns := []core.Transaction{
		{ID: "1", Amount: 50, Date: "2024-03-01", Category: "Food & Dining"},
		{ID: "2", Amount: 30, Date: "2024-03-10", Category: "Travel"},
		{ID: "3", Amount: 20, Date: "2024-02-28", Category: "Food & Dining"},
		{ID: "4", Amount: 10, Date: "2023-03-05", Category: "Travel"},
	}

	tests := []struct {
		name     string
		monthKey string
		wantIDs  []string
	}{
		{
			name:     "exact prefix match",
			monthKey: "2024-03",
			wantIDs:  []string{"1", "2"},
		},
		{
			name:     "different year same month excluded",
			monthKey: "2023-03",
			wantIDs:  []string{"4"},
		},
		{
			name:     "no matches",
			monthKey: "2025-01",
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTransactions(txns, tt.monthKey)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}

	t.Run("empty input yields empty result", func(t *testing.T) {
		if got := FilterTransactions(nil, "2024-03"); len(got) != 0 {
			t.Errorf("expected empty result, got %d", len(got))
		}
	})
}

func TestFilterBudgets(t *testing.T) {
	budgets := []core.Budget{
		{ID: "b1", Category: "Food & Dining", MonthlyLimit: 100, Month: "2024-03"},
		{ID: "b2", Category: "Travel", MonthlyLimit: 200, Month: "2024-02"},
		{ID: "b3", Category: "Shopping", MonthlyLimit: 50, Month: "2024-03"},
	}

	got := FilterBudgets(budgets, "2024-03")
	if len(got) != 2 {
		t.Fatalf("got %d budgets, want 2", len(got))
	}
	if got[0].ID != "b1" || got[1].ID != "b3" {
		t.Errorf("got IDs %q, %q; want b1, b3", got[0].ID, got[1].ID)
	}
}
