package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/analytics"
	"spendwise/internal/backend"
	"spendwise/internal/cache"
	"spendwise/internal/core"
)

// Cache keys for the derivations that span all months. Month keys are
// "YYYY-MM" so these cannot collide with one.
const (
	monthlySeriesKey = "series"
	dashboardAllKey  = "all"
)

// AnalyticsService derives monthly analytics from the store and memoizes
// them per month key. Results are cached until the month's records change or
// the TTL passes.
type AnalyticsService struct {
	store backend.Store
	now   func() time.Time

	dashboards  *cache.LRUCache[core.DashboardStats]
	performance *cache.LRUCache[core.BudgetPerformance]
	comparisons *cache.LRUCache[[]core.BudgetComparisonRow]
	statuses    *cache.LRUCache[core.StatusCounts]
	insights    *cache.LRUCache[[]core.Insight]
	series      *cache.LRUCache[[]core.MonthTotal]
}

func NewAnalyticsService(store backend.Store, cacheSize int, cacheTTL time.Duration) *AnalyticsService {
	return &AnalyticsService{
		store:       store,
		now:         time.Now,
		dashboards:  cache.NewLRUCache[core.DashboardStats](cacheSize, cacheTTL),
		performance: cache.NewLRUCache[core.BudgetPerformance](cacheSize, cacheTTL),
		comparisons: cache.NewLRUCache[[]core.BudgetComparisonRow](cacheSize, cacheTTL),
		statuses:    cache.NewLRUCache[core.StatusCounts](cacheSize, cacheTTL),
		insights:    cache.NewLRUCache[[]core.Insight](cacheSize, cacheTTL),
		series:      cache.NewLRUCache[[]core.MonthTotal](cacheSize, cacheTTL),
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

// CurrentMonth returns the month key of the service clock, in UTC.
func (s *AnalyticsService) CurrentMonth() string {
	return analytics.MonthOf(s.now())
}

// InvalidateMonth drops every cached derivation touched by a change in the
// given month. Insights and the monthly series span months, so those caches
// are purged outright.
func (s *AnalyticsService) InvalidateMonth(monthKey string) {
	s.dashboards.Delete(monthKey)
	s.dashboards.Delete(dashboardAllKey)
	s.performance.Delete(monthKey)
	s.comparisons.Delete(monthKey)
	s.statuses.Delete(monthKey)
	s.insights.Purge()
	s.series.Purge()
}

// Caches returns the LRU caches for registration with a cleanup manager.
func (s *AnalyticsService) Caches() []cache.Cleaner {
	return []cache.Cleaner{
		s.dashboards, s.performance, s.comparisons, s.statuses, s.insights, s.series,
	}
}

// Dashboard aggregates transactions into dashboard statistics. An empty
// monthKey covers every transaction on record; otherwise only the given
// month's.
func (s *AnalyticsService) Dashboard(ctx context.Context, monthKey string) (core.DashboardStats, error) {
	key := monthKey
	if key == "" {
		key = dashboardAllKey
	}
	if stats, ok := s.dashboards.Get(key); ok {
		return stats, nil
	}

	var (
		txns []core.Transaction
		err  error
	)
	if monthKey == "" {
		txns, err = s.store.ListTransactions(ctx)
	} else {
		txns, err = s.store.ListTransactionsByMonth(ctx, monthKey)
	}
	if err != nil {
		return core.DashboardStats{}, fmt.Errorf("load transactions: %w", err)
	}

	stats := analytics.Aggregate(txns)
	s.dashboards.Set(key, stats)

	slog.DebugContext(ctx, "Derived dashboard stats",
		"scope", key,
		"transactions", stats.TotalTransactions)

	return stats, nil
}

// Performance summarizes one month's spending against its budgets.
func (s *AnalyticsService) Performance(ctx context.Context, monthKey string) (core.BudgetPerformance, error) {
	if perf, ok := s.performance.Get(monthKey); ok {
		return perf, nil
	}

	txns, budgets, err := s.monthRecords(ctx, monthKey)
	if err != nil {
		return core.BudgetPerformance{}, err
	}

	perf := analytics.Performance(txns, budgets, monthKey)
	s.performance.Set(monthKey, perf)
	return perf, nil
}

// Comparison builds the budget-vs-actual table for one month.
func (s *AnalyticsService) Comparison(ctx context.Context, monthKey string) ([]core.BudgetComparisonRow, error) {
	if rows, ok := s.comparisons.Get(monthKey); ok {
		return rows, nil
	}

	txns, budgets, err := s.monthRecords(ctx, monthKey)
	if err != nil {
		return nil, err
	}

	rows := analytics.Compare(txns, budgets, monthKey)
	s.comparisons.Set(monthKey, rows)
	return rows, nil
}

// Status buckets one month's budgeted categories by spending state.
func (s *AnalyticsService) Status(ctx context.Context, monthKey string) (core.StatusCounts, error) {
	if counts, ok := s.statuses.Get(monthKey); ok {
		return counts, nil
	}

	txns, budgets, err := s.monthRecords(ctx, monthKey)
	if err != nil {
		return core.StatusCounts{}, err
	}

	counts := analytics.Classify(txns, budgets, monthKey)
	s.statuses.Set(monthKey, counts)
	return counts, nil
}

// Insights evaluates the insight rules for the month containing the service
// clock's current time.
func (s *AnalyticsService) Insights(ctx context.Context) ([]core.Insight, error) {
	ref := s.now()
	monthKey := analytics.MonthOf(ref)

	if out, ok := s.insights.Get(monthKey); ok {
		return out, nil
	}

	// Rules compare against the previous month, so they need the full set.
	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	out := analytics.Insights(txns, budgets, ref)
	s.insights.Set(monthKey, out)

	slog.DebugContext(ctx, "Derived insights", "month", monthKey, "count", len(out))

	return out, nil
}

// MonthlySeries returns total spending per month across all records, oldest
// month first.
func (s *AnalyticsService) MonthlySeries(ctx context.Context) ([]core.MonthTotal, error) {
	if out, ok := s.series.Get(monthlySeriesKey); ok {
		return out, nil
	}

	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	out := analytics.MonthlySeries(txns)
	s.series.Set(monthlySeriesKey, out)
	return out, nil
}

func (s *AnalyticsService) monthRecords(ctx context.Context, monthKey string) ([]core.Transaction, []core.Budget, error) {
	txns, err := s.store.ListTransactionsByMonth(ctx, monthKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := s.store.ListBudgetsByMonth(ctx, monthKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load budgets: %w", err)
	}
	return txns, budgets, nil
}
