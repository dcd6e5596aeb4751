// Package worker recomputes spending digests in response to record change
// events and on a fixed schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/analytics"
	"spendwise/internal/backend"
	"spendwise/internal/core"
)

// DigestWorker derives budget performance, status counts, and insights for a
// month and logs the result. It consumes record change events from AMQP and
// additionally re-digests the current month on a fixed interval, so a lost
// message only delays a digest rather than losing it.
type DigestWorker struct {
	store backend.Store
	now   func() time.Time
}

func NewDigestWorker(store backend.Store) *DigestWorker {
	return &DigestWorker{
		store: store,
		now:   time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (w *DigestWorker) SetClock(now func() time.Time) {
	w.now = now
}

// HandleRecordChanged recomputes the digest for the month named in the
// message. Returning an error requeues the message.
func (w *DigestWorker) HandleRecordChanged(ctx context.Context, msg *amqp.RecordChangedMessage) error {
	slog.InfoContext(ctx, "Processing record change",
		"entity", msg.Entity,
		"id", msg.ID,
		"month", msg.Month)

	if !core.ValidMonthKey(msg.Month) {
		// Malformed months will never become digestible; drop, don't requeue.
		slog.WarnContext(ctx, "Skipping change event with invalid month", "month", msg.Month)
		return nil
	}

	return w.DigestMonth(ctx, msg.Month)
}

// DigestMonth derives and logs one month's digest.
func (w *DigestWorker) DigestMonth(ctx context.Context, monthKey string) error {
	txns, err := w.store.ListTransactionsByMonth(ctx, monthKey)
	if err != nil {
		return fmt.Errorf("load transactions for digest: %w", err)
	}
	budgets, err := w.store.ListBudgetsByMonth(ctx, monthKey)
	if err != nil {
		return fmt.Errorf("load budgets for digest: %w", err)
	}

	perf := analytics.Performance(txns, budgets, monthKey)
	counts := analytics.Classify(txns, budgets, monthKey)

	slog.InfoContext(ctx, "Monthly spending digest",
		"month", monthKey,
		"total_spent", perf.TotalSpent,
		"total_budget", perf.TotalBudget,
		"utilization_percent", perf.UtilizationPercent,
		"over_budget", counts.OverBudget,
		"on_track", counts.OnTrack,
		"under_budget", counts.UnderBudget)

	return nil
}

// DigestCurrentMonth digests the month containing the worker clock's current
// time, including the cross-month insight rules.
func (w *DigestWorker) DigestCurrentMonth(ctx context.Context) error {
	ref := w.now()
	monthKey := analytics.MonthOf(ref)

	if err := w.DigestMonth(ctx, monthKey); err != nil {
		return err
	}

	// Insights compare against the previous month, so they need the full set.
	txns, err := w.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions for insights: %w", err)
	}
	budgets, err := w.store.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("load budgets for insights: %w", err)
	}

	for _, insight := range analytics.Insights(txns, budgets, ref) {
		slog.InfoContext(ctx, "Spending insight",
			"month", monthKey,
			"kind", insight.Kind,
			"title", insight.Title,
			"description", insight.Description,
			"details", insight.Details)
	}

	return nil
}

// RunPeriodicDigest digests the current month every interval until ctx is
// cancelled. The first digest runs immediately.
func (w *DigestWorker) RunPeriodicDigest(ctx context.Context, interval time.Duration) error {
	if err := w.DigestCurrentMonth(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup digest failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic digest", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.DigestCurrentMonth(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic digest failed", "error", err)
			}
		}
	}
}
