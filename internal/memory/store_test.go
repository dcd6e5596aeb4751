package memory

import (
	"context"
	"errors"
	"testing"

	"spendwise/internal/core"
)

func TestStoreTransactionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateTransaction(ctx, core.Transaction{
		Amount: 25, Date: "2024-03-10", Description: "lunch", Category: "Food & Dining",
	})
	if err != nil || id != "1" {
		t.Fatalf("unexpected create: id=%q err=%v", id, err)
	}

	got, err := s.GetTransaction(ctx, id)
	if err != nil || got.Description != "lunch" {
		t.Fatalf("unexpected get: %+v err=%v", got, err)
	}

	got.Amount = 30
	if err := s.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetTransaction(ctx, id)
	if got.Amount != 30 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := s.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetTransaction(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, d := range []string{"2024-03-01", "2024-03-15", "2024-03-15", "2024-02-20"} {
		if _, err := s.CreateTransaction(ctx, core.Transaction{
			Amount: 5, Date: d, Description: "t", Category: "Other",
		}); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}

	list, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantDates := []string{"2024-03-15", "2024-03-15", "2024-03-01", "2024-02-20"}
	for i, d := range wantDates {
		if list[i].Date != d {
			t.Fatalf("list[%d].Date = %s, want %s (full: %+v)", i, list[i].Date, d, list)
		}
	}
	// Same-date behavior: the later insert (id 3) precedes the earlier (id 2).
	if list[0].ID != "3" || list[1].ID != "2" {
		t.Fatalf("same-date order wrong: %s, %s", list[0].ID, list[1].ID)
	}

	march, err := s.ListTransactionsByMonth(ctx, "2024-03")
	if err != nil || len(march) != 3 {
		t.Fatalf("unexpected month list: len=%d err=%v", len(march), err)
	}
}

func TestStoreBudgetUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := core.Budget{Category: "Travel", MonthlyLimit: 200, Month: "2024-03"}
	if _, err := s.CreateBudget(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateBudget(ctx, b); !errors.Is(err, core.ErrDuplicateBudget) {
		t.Fatalf("expected ErrDuplicateBudget, got %v", err)
	}
	b.Month = "2024-04"
	id2, err := s.CreateBudget(ctx, b)
	if err != nil {
		t.Fatalf("create other month: %v", err)
	}

	// Updating into an occupied (category, month) slot also fails.
	other := core.Budget{ID: id2, Category: "Travel", MonthlyLimit: 250, Month: "2024-03"}
	if err := s.UpdateBudget(ctx, other); !errors.Is(err, core.ErrDuplicateBudget) {
		t.Fatalf("expected ErrDuplicateBudget on update, got %v", err)
	}

	march, err := s.ListBudgetsByMonth(ctx, "2024-03")
	if err != nil || len(march) != 1 {
		t.Fatalf("unexpected month budgets: len=%d err=%v", len(march), err)
	}
}
